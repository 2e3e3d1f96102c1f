// Package config loads the optional bootstrapper configuration file.
package config

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "CS_TOOLS_BOOTSTRAP_CONFIG"

// EnvPython overrides the system interpreter used to build the environment.
const EnvPython = "CS_TOOLS_PYTHON"

// Config is the full bootstrapper configuration.
type Config struct {
	App    AppConfig    `toml:"app"`
	Pip    PipConfig    `toml:"pip"`
	Python PythonConfig `toml:"python"`
}

// AppConfig describes the package being installed.
type AppConfig struct {
	// Name is the distribution name and the managed directory name.
	Name string `toml:"name"`
	// DisplayName appears in banners and the PATH snippet comment.
	DisplayName string `toml:"display_name"`
	// Extra is the optional-dependency group requested on install.
	Extra string `toml:"extra"`
	// Executables are the console scripts exposed on PATH.
	Executables []string `toml:"executables"`
	// Repository is the GitHub owner/name used for release lookups.
	Repository string `toml:"repository"`
}

// PipConfig controls pip invocations.
type PipConfig struct {
	MinimumVersion string   `toml:"minimum_version"`
	TrustedHosts   []string `toml:"trusted_hosts"`
}

// PythonConfig controls which interpreter builds the environment.
type PythonConfig struct {
	// Interpreter is an explicit interpreter path; empty means search PATH.
	Interpreter    string `toml:"interpreter"`
	MinimumVersion string `toml:"minimum_version"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:        "cs_tools",
			DisplayName: "ThoughtSpot's CS Tools",
			Extra:       "cli",
			Executables: []string{"cs_tools", "cstools"},
			Repository:  "thoughtspot/cs_tools",
		},
		Pip: PipConfig{
			MinimumVersion: "23.1",
			TrustedHosts: []string{
				"files.pythonhosted.org",
				"pypi.org",
				"pypi.python.org",
				"github.com",
				"codeload.github.com",
			},
		},
		Python: PythonConfig{
			MinimumVersion: "3.9",
		},
	}
}
