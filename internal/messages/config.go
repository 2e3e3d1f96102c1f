package messages

// Config messages for configuration loading and validation.
const (
	// ConfigBuiltinSource names the built-in defaults in validation errors.
	ConfigBuiltinSource  = "built-in defaults"
	ConfigReadFileFmt    = "read config %s: %w"
	ConfigUnknownKeysFmt = "config %s has unknown keys:\n%s"
	ConfigInvalidFmt     = "invalid config %s: %w"

	ConfigFieldRequiredFmt      = "config %s: %s is required"
	ConfigAppNameInvalidFmt     = "config %s: app.name %q must be a bare package name"
	ConfigExecutableEmptyFmt    = "config %s: app.executables must not contain an empty executable name"
	ConfigRepositoryInvalidFmt  = "config %s: app.repository %q must be in the form owner/name"
	ConfigVersionInvalidFmt     = "config %s: %s %q is not a valid version"
	ConfigTrustedHostInvalidFmt = "config %s: pip.trusted_hosts entry %q must be a bare host name"
)
