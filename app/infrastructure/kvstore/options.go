package kvstore

import "menlo.ai/learning-client/config/environment_variables"

const DefaultPrefix = "learning:"

// Options describes how to reach a durable store.
type Options struct {
	URL      string
	Password string
	// DB selects a logical database; -1 keeps the server default
	DB int
	// Prefix namespaces every key written by this client
	Prefix string
	// Path is the file of a file store; empty selects DefaultFilePath
	Path string
}

// OptionsFromEnv reads STORE_* variables.
func OptionsFromEnv() Options {
	env := environment_variables.EnvironmentVariables
	prefix := env.STORE_PREFIX
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Options{
		URL:      env.STORE_URL,
		Password: env.STORE_PASSWORD,
		DB:       env.StoreDB(),
		Prefix:   prefix,
		Path:     env.STORE_PATH,
	}
}
