package runner

import (
	"runtime"
	"slices"
	"strings"
)

// envKeysFold is set where environment variable names are case-insensitive.
var envKeysFold = runtime.GOOS == "windows"

func sameKey(a, b string) bool {
	if envKeysFold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// GetEnv looks key up in env, a list of KEY=value entries. Entries without
// a separator are ignored.
func GetEnv(env []string, key string) (string, bool) {
	for _, entry := range env {
		if k, v, ok := strings.Cut(entry, "="); ok && sameKey(k, key) {
			return v, true
		}
	}
	return "", false
}

// SetEnv replaces the first entry for key in place, or appends one.
func SetEnv(env []string, key string, value string) []string {
	entry := key + "=" + value
	for i, existing := range env {
		if k, _, ok := strings.Cut(existing, "="); ok && sameKey(k, key) {
			env[i] = entry
			return env
		}
	}
	return append(env, entry)
}

// UnsetEnv returns a copy of env without any entry for keys.
func UnsetEnv(env []string, keys ...string) []string {
	result := make([]string, 0, len(env))
	for _, entry := range env {
		k, _, _ := strings.Cut(entry, "=")
		if !slices.ContainsFunc(keys, func(key string) bool { return sameKey(k, key) }) {
			result = append(result, entry)
		}
	}
	return result
}
