package pdfapi

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menlo.ai/learning-client/app/infrastructure/apiclient/apiclienttest"
)

const samplePDF = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

func TestProcessPDF(t *testing.T) {
	type upload struct{ key, content, name string }
	uploads := make(chan upload, 1)
	env := apiclienttest.New(t, func(r gin.IRouter) {
		r.POST("/pdf-upload/process-pdf", func(c *gin.Context) {
			header, err := c.FormFile("file")
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
				return
			}
			f, _ := header.Open()
			defer f.Close()
			content, _ := io.ReadAll(f)
			uploads <- upload{key: c.PostForm("api_key"), content: string(content), name: header.Filename}
			c.JSON(http.StatusOK, gin.H{
				"assignment_title": c.PostForm("assignment_title"),
				"page_count":       1,
				"word_count":       120,
				"concepts":         []gin.H{{"name": "Photosynthesis"}},
			})
		})
	})
	s := NewService(env.Client)

	result, err := s.ProcessPDF(context.Background(), "Plants", "chapter1.pdf", strings.NewReader(samplePDF), "gem-key")
	require.NoError(t, err)
	assert.Equal(t, "Plants", result.AssignmentTitle)
	assert.Equal(t, 1, result.PageCount)
	require.Len(t, result.Concepts, 1)
	assert.Equal(t, "Photosynthesis", result.Concepts[0]["name"])

	got := <-uploads
	assert.Equal(t, samplePDF, got.content)
	assert.Equal(t, "chapter1.pdf", got.name)
	assert.Equal(t, "gem-key", got.key)

	last, _ := env.Backend.Last()
	assert.True(t, strings.HasPrefix(last.Header.Get("Content-Type"), "multipart/form-data; boundary="))
}

func TestProcessPDF_RejectsOtherFiles(t *testing.T) {
	env := apiclienttest.New(t, func(r gin.IRouter) {})
	s := NewService(env.Client)

	_, err := s.ProcessPDF(context.Background(), "Notes", "notes.docx", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrNotPDF)
	assert.Zero(t, env.Backend.Total())
}
