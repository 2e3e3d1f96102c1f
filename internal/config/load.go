package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// ErrConfigValidation wraps validation failures, as opposed to TOML syntax
// or filesystem errors.
var ErrConfigValidation = errors.New("config validation failed")

var osReadFile = os.ReadFile

// Load returns the effective configuration. path wins over the
// CS_TOOLS_BOOTSTRAP_CONFIG variable; with neither set the defaults are used.
// getenv supplies environment lookups and may be nil.
func Load(path string, getenv func(string) string) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(getenv(EnvConfigPath))
	}

	cfg := Default()
	if path != "" {
		data, err := osReadFile(path)
		if err != nil {
			return nil, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
		}
		parsed, err := Parse(data, path)
		if err != nil {
			return nil, err
		}
		cfg = parsed
	}

	if python := strings.TrimSpace(getenv(EnvPython)); python != "" {
		cfg.Python.Interpreter = python
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse overlays TOML data onto the defaults. Unknown keys are rejected.
// source is used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("%w: "+messages.ConfigUnknownKeysFmt, ErrConfigValidation, source, strictErr.String())
		}
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	return cfg, nil
}
