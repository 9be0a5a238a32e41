// Package testbackend runs a gin engine behind httptest for client tests and records
// every request it receives.
package testbackend

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// Recorded is one request seen by the backend.
type Recorded struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

type Backend struct {
	Engine *gin.Engine
	server *httptest.Server

	mu       sync.Mutex
	requests []Recorded
}

// New starts a backend. register adds the routes under test. The server is closed
// when the test ends.
func New(t testing.TB, register func(r gin.IRouter)) *Backend {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b := &Backend{Engine: gin.New()}
	b.Engine.Use(b.record)
	b.Engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	register(b.Engine)
	b.server = httptest.NewServer(b.Engine)
	t.Cleanup(b.server.Close)
	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

// Close stops the server early, e.g. to simulate an unreachable backend.
func (b *Backend) Close() {
	b.server.Close()
}

// Hits counts requests matching method and path.
func (b *Backend) Hits(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Total counts every request received.
func (b *Backend) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// Last returns the most recent request.
func (b *Backend) Last() (Recorded, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return Recorded{}, false
	}
	return b.requests[len(b.requests)-1], true
}

func (b *Backend) record(c *gin.Context) {
	body, _ := c.GetRawData()
	b.mu.Lock()
	b.requests = append(b.requests, Recorded{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.RawQuery,
		Header: c.Request.Header.Clone(),
		Body:   body,
	})
	b.mu.Unlock()
	c.Request.Body = http.NoBody
	if len(body) > 0 {
		c.Request.Body = newBody(body)
	}
	c.Next()
}
