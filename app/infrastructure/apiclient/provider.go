package apiclient

import "github.com/google/wire"

var ProviderSet = wire.NewSet(
	NewConfig,
	NewRestyClient,
	NewClient,
)
