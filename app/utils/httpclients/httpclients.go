package httpclients

import (
	"fmt"
	"time"

	"menlo.ai/learning-client/app/utils/logger"
	"resty.dev/v3"
)

const DefaultTimeout = 30 * time.Second

var userAgent = "learning-client/1.0"

// NewClient builds a resty client tagged with the given name. Requests carry the name
// in the User-Agent so backend logs can tell the callers apart.
func NewClient(name string) *resty.Client {
	client := resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("User-Agent", fmt.Sprintf("%s (%s)", userAgent, name))
	logger.GetLogger().Debugf("httpclients: created %s", name)
	return client
}
