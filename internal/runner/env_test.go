package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetEnvReplacesExistingEntry(t *testing.T) {
	env := SetEnv([]string{"PATH=/bin", "HTTPS_PROXY=http://old:1"}, "HTTPS_PROXY", "http://proxy:3128")
	assert.Equal(t, []string{"PATH=/bin", "HTTPS_PROXY=http://proxy:3128"}, env)
}

func TestSetEnvAppendsMissing(t *testing.T) {
	env := SetEnv([]string{"PATH=/bin"}, "HTTPS_PROXY", "http://proxy:3128")
	value, ok := GetEnv(env, "HTTPS_PROXY")
	assert.True(t, ok)
	assert.Equal(t, "http://proxy:3128", value)
}

func TestGetEnv(t *testing.T) {
	env := []string{"PYTHONHOME=/opt/py", "NOVAL", "EMPTY="}

	value, ok := GetEnv(env, "PYTHONHOME")
	assert.True(t, ok)
	assert.Equal(t, "/opt/py", value)

	_, ok = GetEnv(env, "NOVAL")
	assert.False(t, ok, "entries without a separator are ignored")

	value, ok = GetEnv(env, "EMPTY")
	assert.True(t, ok)
	assert.Empty(t, value)
}

func TestUnsetEnvRemovesEveryListedKey(t *testing.T) {
	env := []string{"PYTHONPATH=/a", "PATH=/bin", "VIRTUAL_ENV=/v", "PYTHONPATH=/b"}
	got := UnsetEnv(env, "PYTHONPATH", "VIRTUAL_ENV")
	assert.Equal(t, []string{"PATH=/bin"}, got)
	assert.Len(t, env, 4, "input is not modified")
}

func TestUnsetEnvWithoutKeysCopies(t *testing.T) {
	env := []string{"A=1"}
	assert.Equal(t, env, UnsetEnv(env))
}
