package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the system interpreter, the virtual environment, and PATH"

	DoctorHealthCheckFmt = "Checking %s health in %s...\n"

	DoctorCheckNamePython      = "Python"
	DoctorCheckNameEnvironment = "Venv"
	DoctorCheckNameGlobal      = "Global"
	DoctorCheckNamePath        = "PATH"
	DoctorCheckNameUpdate      = "Update"

	DoctorPythonMissingFmt       = "No usable system interpreter: %v"
	DoctorPythonVersionFailedFmt = "Could not determine the version of %s: %v"
	DoctorPythonTooOldFmt        = "Python %s at %s is older than the required %s"
	DoctorPythonTooOldRecommend  = "Install a newer Python and put it first on PATH, or point CS_TOOLS_PYTHON at it."
	DoctorPythonOKFmt            = "Python %s at %s"

	DoctorEnvMissingFmt          = "No virtual environment at %s"
	DoctorEnvMissingRecommendFmt = "Run `%s install`."
	DoctorEnvPresentFmt          = "Virtual environment at %s"

	DoctorGlobalCheckFailedFmt  = "Could not inspect the system interpreter's packages: %v"
	DoctorGlobalInstalledFmt    = "%s %s is installed globally and may shadow the managed copy"
	DoctorGlobalRecommendFmt    = "Run `%s reinstall` to remove the global copy."
	DoctorGlobalCleanFmt        = "%s is not installed globally"
	DoctorGlobalSameInterpreter = "The system interpreter is the managed interpreter"

	DoctorPathPresentFmt          = "%s is on PATH"
	DoctorPathMissingFmt          = "%s is not on PATH"
	DoctorPathMissingRecommendFmt = "Restart your shell. If it is still missing, run `%s path add`."

	DoctorUpdateSkippedOffline        = "Offline mode is enabled; skipping the release check"
	DoctorUpdateNotInstalledFmt       = "%s is not installed in the virtual environment"
	DoctorUpdateInstalledVersionFmt   = "Could not read the installed version: %v"
	DoctorUpdateRateLimited           = "GitHub API rate limit reached; try again later"
	DoctorUpdateFailedFmt             = "Could not check for updates: %v"
	DoctorUpdateFailedRecommend       = "Check your network connection, or pass --proxy."
	DoctorUpdateAvailableFmt          = "%s %s is available (installed %s)"
	DoctorUpdateAvailableRecommendFmt = "Run `%s reinstall` to upgrade."
	DoctorUpToDateFmt                 = "%s %s is up to date"

	// DoctorStatusOKLabel is the label for OK results.
	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-12s %s\n"
	DoctorRecommendationPrefix = "       > "
	DoctorRecommendationIndent = "         "

	DoctorFailureSummary = "Some checks failed. See the recommendations above."
	DoctorSuccessSummary = "All checks passed."

	// PromptCancelled indicates the user aborted a prompt.
	PromptCancelled = "prompt cancelled"
)
