package pdfapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"menlo.ai/learning-client/app/infrastructure/apiclient"
)

// ProcessTimeout covers text extraction plus the AI concept pass on the backend.
const ProcessTimeout = 3 * time.Minute

var ErrNotPDF = errors.New("pdfapi: only PDF files are accepted")

type Concept map[string]any

type ProcessedPDF struct {
	AssignmentTitle string    `json:"assignment_title"`
	PageCount       int       `json:"page_count"`
	WordCount       int       `json:"word_count"`
	Concepts        []Concept `json:"concepts"`
}

type PDFService struct {
	client *apiclient.Client
}

func NewService(client *apiclient.Client) *PDFService {
	return &PDFService{client: client}
}

// ProcessPDF uploads a PDF and returns the concepts the backend extracted from it.
// apiKey is forwarded to the backend's AI provider when set.
func (s *PDFService) ProcessPDF(ctx context.Context, assignmentTitle, fileName string, file io.Reader, apiKey string) (*ProcessedPDF, error) {
	if filepath.Ext(fileName) != ".pdf" {
		return nil, ErrNotPDF
	}
	fields := map[string]string{"assignment_title": assignmentTitle}
	if apiKey != "" {
		fields["api_key"] = apiKey
	}
	return apiclient.Send[*ProcessedPDF](ctx, s.client, apiclient.Request{
		Method: http.MethodPost,
		Path:   "/pdf-upload/process-pdf",
		Body: apiclient.MultipartBody{
			Fields: fields,
			Files:  []apiclient.File{{Field: "file", Name: fileName, Reader: file}},
		},
		Timeout: ProcessTimeout,
	})
}
