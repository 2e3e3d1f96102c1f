package messages

// System messages for process, filesystem, and locking internals.
const (
	// RunnerEmptyCommand indicates Run was called without argv.
	RunnerEmptyCommand        = "command is required"
	RunnerPipeFailedFmt       = "attach output pipe for %s: %w"
	RunnerStartFailedFmt      = "start %s: %w"
	RunnerWaitFailedFmt       = "wait for %s: %w"
	RunnerReadOutputFailedFmt = "read output of %s: %w"
	RunnerCommandFailedFmt    = "command exited with code %d: %s"

	// FsutilCreateTempFmt formats temp file creation failures for atomic writes.
	FsutilCreateTempFmt = "create temp file for %s: %w"
	FsutilWriteTempFmt  = "write temp file for %s: %w"
	FsutilSyncTempFmt   = "sync temp file for %s: %w"
	FsutilCloseTempFmt  = "close temp file for %s: %w"
	FsutilChmodTempFmt  = "chmod temp file for %s: %w"
	FsutilRenameTempFmt = "move temp file into place at %s: %w"

	// LockCreateDirFmt formats lock directory creation failures.
	LockCreateDirFmt = "create lock directory for %s: %w"
	LockOpenFmt      = "open lock file %s: %w"
	LockAcquireFmt   = "acquire lock %s: %w"
	LockTimeoutFmt   = "timed out waiting for lock %s after %s; another bootstrapper may be running"

	// LocateAppRequired indicates ResolveRoot was called without an app name.
	LocateAppRequired   = "application name is required"
	LocateHomeUnknown   = "could not determine the home directory"
	LocateAbsFmt        = "could not make %s absolute"
	LocateEnsureDirFmt  = "could not create %s: %w"
	LocateRedirectedFmt = "Requested environment location %s was redirected to %s"
	LocateRemediation   = "Set HOME (or APPDATA on Windows, XDG_CONFIG_HOME elsewhere) to a writable directory and run again."

	// LoggingCreateFileFmt formats failures creating the error log file.
	LoggingCreateFileFmt = "create log file in %s: %w"
	LoggingFlushFileFmt  = "write log file %s: %w"
	LoggingNoFile        = "no log file is attached to this logger"

	// VersionEmpty indicates an empty version string.
	VersionEmpty      = "version is required"
	VersionInvalidFmt = "invalid version %q: %w"

	// TerminalRequired indicates an interactive prompt ran without a terminal.
	TerminalRequired = "this prompt requires an interactive terminal"
)
