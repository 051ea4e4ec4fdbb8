package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// apiKeyEnvVars maps each backend onto the environment variable holding its API key.
var apiKeyEnvVars = map[ModelID]string{
	ModelGPT:        "OPENAI_API_KEY",
	ModelClaude:     "ANTHROPIC_API_KEY",
	ModelGemini:     "GOOGLE_API_KEY",
	ModelPerplexity: "PERPLEXITY_API_KEY",
	ModelGrok:       "GROK_API_KEY",
}

// EnvLookup resolves the value for an environment variable.
type EnvLookup func(string) (string, bool)

// DefaultEnvLookup delegates to os.LookupEnv.
func DefaultEnvLookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// EnvVarName returns the environment variable that carries the API key for id.
func EnvVarName(id ModelID) (string, error) {
	name, ok := apiKeyEnvVars[id]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownModel, id)
	}
	return name, nil
}

// LoadAPIKeys reads API keys from the process environment.
func LoadAPIKeys() map[ModelID]string {
	return LoadAPIKeysFrom(DefaultEnvLookup)
}

// LoadAPIKeysFrom reads API keys through lookup. Values are trimmed; backends
// whose variable is unset or blank are absent from the result.
func LoadAPIKeysFrom(lookup EnvLookup) map[ModelID]string {
	if lookup == nil {
		lookup = DefaultEnvLookup
	}
	keys := make(map[ModelID]string)
	for _, id := range knownModels {
		value, ok := lookup(apiKeyEnvVars[id])
		if !ok {
			continue
		}
		if value = strings.TrimSpace(value); value != "" {
			keys[id] = value
		}
	}
	return keys
}

// DotEnvLookup layers a dotenv file under the process environment. Variables
// already present in the process win, matching godotenv.Load, but the process
// environment itself is left untouched.
func DotEnvLookup(paths ...string) (EnvLookup, error) {
	values := make(map[string]string)
	for _, path := range paths {
		fileValues, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", path, err)
		}
		for k, v := range fileValues {
			if _, seen := values[k]; !seen {
				values[k] = v
			}
		}
	}
	return func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := values[key]
		return value, ok
	}, nil
}
