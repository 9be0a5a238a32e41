package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"menlo.ai/learning-client/app/domain/navigation"
	"menlo.ai/learning-client/app/domain/session"
	"menlo.ai/learning-client/app/infrastructure/cache"
	"menlo.ai/learning-client/app/infrastructure/inflight"
	"menlo.ai/learning-client/app/utils/functional"
	"menlo.ai/learning-client/app/utils/httpclients"
	"menlo.ai/learning-client/app/utils/logger"
	"menlo.ai/learning-client/config/environment_variables"
	"resty.dev/v3"
)

const DefaultBaseURL = "http://localhost:8000"

// Config holds the transport settings of a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewConfig reads API_BASE_URL and REQUEST_TIMEOUT.
func NewConfig() Config {
	env := environment_variables.EnvironmentVariables
	base := env.API_BASE_URL
	if base == "" {
		base = DefaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: env.RequestTimeout(httpclients.DefaultTimeout),
	}
}

// NewRestyClient is the transport used by Client.
func NewRestyClient() *resty.Client {
	return httpclients.NewClient("LearningAPIClient")
}

// Client performs backend calls with GET caching, collapsing of identical in-flight
// GETs and bearer authentication. One Client is meant to be shared by the whole
// application.
type Client struct {
	baseURL   string
	timeout   time.Duration
	http      *resty.Client
	cache     *cache.Manager
	inflight  *inflight.Registry
	session   *session.Manager
	navigator navigation.Navigator
}

func NewClient(
	cfg Config,
	httpClient *resty.Client,
	cacheManager *cache.Manager,
	registry *inflight.Registry,
	sessionManager *session.Manager,
	navigator navigation.Navigator,
) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   cfg.Timeout,
		http:      httpClient,
		cache:     cacheManager,
		inflight:  registry,
		session:   sessionManager,
		navigator: navigator,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Cache() *cache.Manager {
	return c.cache
}

func (c *Client) Session() *session.Manager {
	return c.session
}

// URL resolves path against the base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + normalizePath(path)
}

// outcome is what a network call settles to; it is shared between collapsed callers.
type outcome struct {
	status         int
	payload        Payload
	sessionExpired bool
}

// Do runs req. A cached GET is answered without the network. A 401 ends the session
// and yields a Response with SessionExpired set and a nil error. Other failures are
// returned as *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := req.method()
	url := c.URL(req.Path)
	cacheable := method == http.MethodGet && req.CacheKey != ""

	if cacheable && !req.ForceRefresh {
		if data, ok := c.cache.Get(ctx, req.CacheKey); ok {
			logger.GetLogger().WithFields(logrus.Fields{
				"method":    method,
				"url":       url,
				"cache_key": req.CacheKey,
			}).Debug("api: cache hit")
			return &Response{Status: http.StatusOK, Payload: Payload(data), FromCache: true}, nil
		}
	}

	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var (
		out    *outcome
		shared bool
		err    error
	)
	if method == http.MethodGet {
		var v any
		v, shared, err = c.inflight.Do(ctx, url, func(callCtx context.Context) (any, error) {
			if timeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(callCtx, timeout)
				defer cancel()
			}
			return c.execute(callCtx, method, url, req)
		})
		if v != nil {
			out = v.(*outcome)
		}
	} else {
		out, err = c.execute(ctx, method, url, req)
	}
	if err != nil {
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			err = newTransportError("request aborted", err)
		}
		return nil, err
	}

	if out.sessionExpired {
		return &Response{Status: out.status, SessionExpired: true, Shared: shared}, nil
	}
	if cacheable {
		c.cache.Set(ctx, req.CacheKey, json.RawMessage(out.payload))
	}
	if method != http.MethodGet {
		for _, prefix := range functional.Distinct(req.Invalidate) {
			c.cache.Invalidate(ctx, prefix)
		}
	}
	return &Response{Status: out.status, Payload: out.payload, Shared: shared}, nil
}

// execute performs the network call and classifies the answer.
func (c *Client) execute(ctx context.Context, method, url string, req Request) (*outcome, error) {
	requestID := uuid.New().String()
	log := logger.GetLogger().WithFields(logrus.Fields{
		"request_id": requestID,
		"method":     method,
		"url":        url,
	})

	r := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Accept", "application/json").
		SetHeader("X-Request-ID", requestID)
	if req.Body != nil {
		if err := req.Body.apply(r); err != nil {
			return nil, newTransportError("build request", err)
		}
	}
	for k, v := range c.session.AuthHeader() {
		r.SetHeader(k, v)
	}
	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}

	start := time.Now()
	resp, err := r.Execute(method, url)
	if err != nil {
		log.WithField("latency", time.Since(start).String()).Warnf("api: transport failure: %v", err)
		return nil, newTransportError("request failed", err)
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, newTransportError("read response", err)
	}
	status := resp.StatusCode()
	log = log.WithFields(logrus.Fields{
		"status":  status,
		"latency": time.Since(start).String(),
	})

	switch {
	case status == http.StatusUnauthorized:
		log.Info("api: session expired")
		c.ExpireSession(ctx)
		return &outcome{status: status, sessionExpired: true}, nil
	case status >= 200 && status < 300:
		payload, err := parsePayload(resp.Header().Get("Content-Type"), body)
		if err != nil {
			log.Warnf("api: malformed response: %v", err)
			return nil, newTransportError("malformed response", err)
		}
		log.Debug("api: ok")
		return &outcome{status: status, payload: payload}, nil
	default:
		apiErr := newRequestError(status, statusText(status, resp.Status()), body)
		log.WithField("error", apiErr.Message).Warn("api: request failed")
		return nil, apiErr
	}
}

// ExpireSession drops the token, remembers where the user was and sends them to login.
// Once the user is on the login view, further expiries keep the saved location.
func (c *Client) ExpireSession(ctx context.Context) {
	c.session.ClearToken(ctx)
	if c.navigator == nil {
		return
	}
	if location := c.navigator.CurrentLocation(ctx); location != navigation.LoginLocation {
		c.session.SaveReturnTo(ctx, location)
	}
	c.navigator.ToLogin(ctx)
}

// readBody drains the response body, which is left unparsed so error bodies survive.
func readBody(resp *resty.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func parsePayload(contentType string, body []byte) (Payload, error) {
	if strings.Contains(strings.ToLower(contentType), "json") {
		if len(strings.TrimSpace(string(body))) == 0 {
			return nil, nil
		}
		if !json.Valid(body) {
			return nil, errors.New("invalid json body")
		}
		return Payload(body), nil
	}
	encoded, err := json.Marshal(string(body))
	if err != nil {
		return nil, err
	}
	return Payload(encoded), nil
}
