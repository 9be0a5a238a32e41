package domain

import (
	"github.com/google/wire"
	"menlo.ai/learning-client/app/domain/authapi"
	"menlo.ai/learning-client/app/domain/cron"
	"menlo.ai/learning-client/app/domain/healthcheck"
	"menlo.ai/learning-client/app/domain/pdfapi"
	"menlo.ai/learning-client/app/domain/quizapi"
	"menlo.ai/learning-client/app/domain/session"
	"menlo.ai/learning-client/app/domain/studentapi"
	"menlo.ai/learning-client/app/domain/teacherapi"
)

var ServiceProvider = wire.NewSet(
	session.NewSessionManager,
	authapi.NewService,
	studentapi.NewService,
	teacherapi.NewService,
	quizapi.NewService,
	pdfapi.NewService,
	cron.NewService,
	healthcheck.NewService,
)
