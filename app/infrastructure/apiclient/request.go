package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resty.dev/v3"
)

// Request describes one call to the backend.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    Body

	// CacheKey enables response caching for GET requests
	CacheKey string
	// ForceRefresh skips the cached value and overwrites it with the fresh response
	ForceRefresh bool
	// Invalidate lists cache key prefixes dropped after a successful mutating call
	Invalidate []string
	// Timeout overrides the client default for this call
	Timeout time.Duration
}

func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}

// normalizePath makes sure the path starts with a slash.
func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// Body is a request payload. Each variant decides its own encoding and content type.
type Body interface {
	apply(r *resty.Request) error
}

// JSONBody is encoded as JSON with Content-Type application/json.
type JSONBody struct {
	Value any
}

func (b JSONBody) apply(r *resty.Request) error {
	data, err := json.Marshal(b.Value)
	if err != nil {
		return fmt.Errorf("encode json body: %w", err)
	}
	r.SetHeader("Content-Type", "application/json")
	r.SetBody(data)
	return nil
}

// FormBody is an already encoded application/x-www-form-urlencoded string.
type FormBody string

// FormValues encodes values as a FormBody.
func FormValues(values url.Values) FormBody {
	return FormBody(values.Encode())
}

func (b FormBody) apply(r *resty.Request) error {
	r.SetHeader("Content-Type", "application/x-www-form-urlencoded")
	r.SetBody(string(b))
	return nil
}

// File is one file part of a multipart body.
type File struct {
	Field  string
	Name   string
	Reader io.Reader
}

// MultipartBody leaves Content-Type to the transport so it can add the boundary.
type MultipartBody struct {
	Fields map[string]string
	Files  []File
}

func (b MultipartBody) apply(r *resty.Request) error {
	if len(b.Fields) > 0 {
		r.SetMultipartFormData(b.Fields)
	}
	for _, f := range b.Files {
		if f.Reader == nil {
			return fmt.Errorf("multipart file %q has no content", f.Field)
		}
		r.SetFileReader(f.Field, f.Name, f.Reader)
	}
	return nil
}
