//go:build wireinject

package main

import (
	"github.com/google/wire"
	"menlo.ai/learning-client/app/domain"
	"menlo.ai/learning-client/app/infrastructure"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
