package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = strings.TrimSpace(pair[1])
	}

	return environmentVariables
}

// FirstEnvironmentVariable returns the first non-empty value among keys
func FirstEnvironmentVariable(env map[string]string, keys ...string) string {
	for _, key := range keys {
		if env[key] != "" {
			return env[key]
		}
	}

	return ""
}
