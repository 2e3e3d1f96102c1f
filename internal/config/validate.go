package config

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// Validate ensures the config is complete. path identifies the source in errors.
func (c *Config) Validate(path string) error {
	if path == "" {
		path = messages.ConfigBuiltinSource
	}
	if strings.TrimSpace(c.App.Name) == "" {
		return validationErr(messages.ConfigFieldRequiredFmt, path, "app.name")
	}
	if strings.ContainsAny(c.App.Name, `/\ `) {
		return validationErr(messages.ConfigAppNameInvalidFmt, path, c.App.Name)
	}
	if strings.TrimSpace(c.App.DisplayName) == "" {
		return validationErr(messages.ConfigFieldRequiredFmt, path, "app.display_name")
	}
	if len(c.App.Executables) == 0 {
		return validationErr(messages.ConfigFieldRequiredFmt, path, "app.executables")
	}
	for _, exe := range c.App.Executables {
		if strings.TrimSpace(exe) == "" {
			return validationErr(messages.ConfigExecutableEmptyFmt, path)
		}
	}
	owner, name, ok := strings.Cut(c.App.Repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return validationErr(messages.ConfigRepositoryInvalidFmt, path, c.App.Repository)
	}
	if _, err := goversion.NewVersion(c.Pip.MinimumVersion); err != nil {
		return validationErr(messages.ConfigVersionInvalidFmt, path, "pip.minimum_version", c.Pip.MinimumVersion)
	}
	if _, err := goversion.NewVersion(c.Python.MinimumVersion); err != nil {
		return validationErr(messages.ConfigVersionInvalidFmt, path, "python.minimum_version", c.Python.MinimumVersion)
	}
	for _, host := range c.Pip.TrustedHosts {
		if strings.TrimSpace(host) == "" || strings.ContainsAny(host, " /") {
			return validationErr(messages.ConfigTrustedHostInvalidFmt, path, host)
		}
	}
	return nil
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfigValidation, fmt.Sprintf(format, args...))
}

// Requirement returns the pip requirement naming the package with its extra.
func (c *Config) Requirement() string {
	if c.App.Extra == "" {
		return c.App.Name
	}
	return c.App.Name + "[" + c.App.Extra + "]"
}
