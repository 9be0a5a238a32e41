package quizapi

import (
	"context"
	"fmt"
	"net/http"

	"menlo.ai/learning-client/app/infrastructure/apiclient"
	"menlo.ai/learning-client/app/infrastructure/cache"
)

const basePath = "/api/quizzes"

type QuizService struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *QuizService {
	return &QuizService{client: client}
}

func (s *QuizService) Create(ctx context.Context, quiz NewQuiz) (*Quiz, error) {
	return apiclient.Send[*Quiz](ctx, s.client, apiclient.Request{
		Method:     http.MethodPost,
		Path:       basePath + "/",
		Body:       apiclient.JSONBody{Value: quiz},
		Invalidate: []string{cache.QuizzesKeyPrefix},
	})
}

// Assign makes a quiz available to every student enrolled in the class.
func (s *QuizService) Assign(ctx context.Context, assignment ClassQuiz) (map[string]any, error) {
	return apiclient.Send[map[string]any](ctx, s.client, apiclient.Request{
		Method:     http.MethodPost,
		Path:       basePath + "/assign",
		Body:       apiclient.JSONBody{Value: assignment},
		Invalidate: []string{cache.QuizzesKeyPrefix},
	})
}

func (s *QuizService) ListForStudent(ctx context.Context, forceRefresh bool) ([]StudentQuiz, error) {
	return apiclient.Get[[]StudentQuiz](ctx, s.client, basePath+"/student", cache.StudentQuizzesKey, forceRefresh)
}

func (s *QuizService) Get(ctx context.Context, quizID int) (*StudentQuizView, error) {
	return apiclient.Get[*StudentQuizView](ctx, s.client, fmt.Sprintf("%s/%d", basePath, quizID), "", false)
}

func (s *QuizService) Submit(ctx context.Context, quizID int, answers Answers) (*StudentQuiz, error) {
	return apiclient.Send[*StudentQuiz](ctx, s.client, apiclient.Request{
		Method:     http.MethodPost,
		Path:       fmt.Sprintf("%s/%d/submit", basePath, quizID),
		Body:       apiclient.JSONBody{Value: map[string]Answers{"answers": answers}},
		Invalidate: []string{cache.QuizzesKeyPrefix, cache.MasteryKey, cache.LeaderboardKey},
	})
}

func (s *QuizService) Submissions(ctx context.Context, quizID int, forceRefresh bool) ([]Submission, error) {
	return apiclient.Get[[]Submission](ctx, s.client, fmt.Sprintf("%s/%d/submissions", basePath, quizID),
		fmt.Sprintf(cache.QuizSubmissionsKeyPattern, quizID), forceRefresh)
}

func (s *QuizService) Statistics(ctx context.Context, quizID int, forceRefresh bool) (*Statistics, error) {
	return apiclient.Get[*Statistics](ctx, s.client, fmt.Sprintf("%s/%d/statistics", basePath, quizID),
		fmt.Sprintf(cache.QuizStatisticsKeyPattern, quizID), forceRefresh)
}
