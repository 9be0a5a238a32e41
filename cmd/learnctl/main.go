package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"menlo.ai/learning-client/app/domain/authapi"
	"menlo.ai/learning-client/app/domain/common"
	"menlo.ai/learning-client/app/domain/cron"
	"menlo.ai/learning-client/app/domain/healthcheck"
	"menlo.ai/learning-client/app/domain/navigation"
	"menlo.ai/learning-client/app/domain/pdfapi"
	"menlo.ai/learning-client/app/domain/quizapi"
	"menlo.ai/learning-client/app/domain/session"
	"menlo.ai/learning-client/app/domain/studentapi"
	"menlo.ai/learning-client/app/domain/teacherapi"
	"menlo.ai/learning-client/app/infrastructure/cache"
	"menlo.ai/learning-client/app/utils/logger"
	"menlo.ai/learning-client/config/environment_variables"
)

type Application struct {
	Session     *session.Manager
	Cache       *cache.Manager
	Navigator   *navigation.Tracker
	Auth        *authapi.AuthService
	Student     *studentapi.StudentService
	Teacher     *teacherapi.TeacherService
	Quiz        *quizapi.QuizService
	PDF         *pdfapi.PDFService
	Janitor     *cron.CronService
	Healthcheck *healthcheck.HealthcheckCrontabService
}

func init() {
	// a missing .env is fine, the process environment is used as is
	_ = godotenv.Load()
	environment_variables.EnvironmentVariables.LoadFromEnv()
	logger.SetLevel(environment_variables.EnvironmentVariables.LOG_LEVEL)
}

func main() {
	application, err := CreateApplication()
	if err != nil {
		logger.GetLogger().Fatalf("learnctl: %v", err)
	}
	application.Session.Initialize(context.Background())

	cli := newCommandLine(application, os.Stdout)
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "error: %s\n", common.FromError(err))
		}
		os.Exit(1)
	}
}
