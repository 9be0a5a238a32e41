package environment_variables

import (
	"os"
	"reflect"
	"strconv"
	"time"

	"menlo.ai/learning-client/app/utils/logger"
)

type EnvironmentVariable struct {
	API_BASE_URL         string
	STORE_TYPE           string
	STORE_URL            string
	STORE_PASSWORD       string
	STORE_DB             string
	STORE_PREFIX         string
	STORE_PATH           string
	CACHE_PREFIX         string
	CACHE_PURGE_SCHEDULE string
	REQUEST_TIMEOUT      string
	LOG_LEVEL            string
}

// optional variables are not reported when missing
var optional = map[string]bool{
	"STORE_TYPE":           true,
	"STORE_URL":            true,
	"STORE_PASSWORD":       true,
	"STORE_DB":             true,
	"STORE_PREFIX":         true,
	"STORE_PATH":           true,
	"CACHE_PREFIX":         true,
	"CACHE_PURGE_SCHEDULE": true,
	"REQUEST_TIMEOUT":      true,
	"LOG_LEVEL":            true,
}

// LoadFromEnv fills the fields from the process environment. It is meant to run once
// at startup, before other goroutines read the singleton.
func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" && !optional[envKey] {
			logger.GetLogger().Warnf("Missing SYSENV: %s", envKey)
		}
		if envValue != "" {
			if v.Field(i).Kind() == reflect.String {
				v.Field(i).SetString(envValue)
			}
		}
	}
}

// RequestTimeout parses REQUEST_TIMEOUT as a Go duration, falling back to def.
func (ev *EnvironmentVariable) RequestTimeout(def time.Duration) time.Duration {
	if ev.REQUEST_TIMEOUT == "" {
		return def
	}
	d, err := time.ParseDuration(ev.REQUEST_TIMEOUT)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// StoreDB returns STORE_DB as an integer, or -1 when unset or invalid.
func (ev *EnvironmentVariable) StoreDB() int {
	if ev.STORE_DB == "" {
		return -1
	}
	db, err := strconv.Atoi(ev.STORE_DB)
	if err != nil {
		return -1
	}
	return db
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
