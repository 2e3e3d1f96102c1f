package messages

// Managed environment and PATH registration messages.
const (
	// VenvCreateDirFmt formats failures creating an environment directory.
	VenvCreateDirFmt        = "create directory %s: %w"
	VenvReadTmpDirFmt       = "read temporary directory %s: %w"
	VenvTmpEntrySkippedFmt  = "Could not remove %s: %v"
	VenvTmpInUseFmt         = "Skipped %d temporary item(s) still in use: %s"
	VenvCreatingFmt         = "Creating virtual environment with %s at %s"
	VenvCreateFailedFmt     = "create virtual environment at %s: %w"
	VenvEnsurePipFailedFmt  = "bootstrap pip into the virtual environment: %w"
	VenvUpgradePipFailedFmt = "upgrade pip in the virtual environment: %w"
	VenvRemoveFailedFmt     = "Could not remove %s: %v"

	VenvPipNotListed         = "pip is not listed in the virtual environment"
	VenvPipVersionUnknownFmt = "Could not determine the installed pip version: %v"
	VenvPipTooOldFmt         = "pip %s is older than the required %s; installs may fail"
	VenvDecodePipListFmt     = "decode pip list output: %w"

	// VenvSystemPythonNotFoundFmt formats a missing system interpreter.
	VenvSystemPythonNotFoundFmt  = "could not find a usable Python interpreter (%s): %v"
	VenvSystemPythonRemediation  = "Install Python 3.9 or newer from https://www.python.org/downloads/ and make sure it is on your PATH, or point CS_TOOLS_PYTHON at an interpreter."
	VenvBaseExecutableMissingFmt = "Base interpreter %s reported by %s does not exist; using it as-is"
	VenvSystemPythonFmt          = "Using system interpreter %s"
	VenvClearingEnvFmt           = "Clearing %s=%s for the child interpreter"
	VenvPythonVersionEmpty       = "the system interpreter did not report a version"
	VenvUserBaseEmptyFmt         = "the system interpreter did not report a user base (exit code %d)"
	VenvEnsureDirFailedFmt       = "ensure environment directory %s: %w"
	VenvEnsureDirEmptyFmt        = "venv did not report a directory for %s"

	// VenvGloballyInstalledFmt warns that a global install shadows the managed one.
	VenvGloballyInstalledFmt = "%s and many other dependencies were found to be globally installed at %s !!\n" +
		"Removing it now..\n" +
		"\n" +
		"If you did not intend to install it globally, run the following commands to clean up your environment.\n" +
		"This will reset the python environment to default.\n" +
		"\n" +
		"  1.  python -m pip freeze > global-env-requirements.txt\n" +
		"  2.  python -m pip uninstall -r global-env-requirements.txt --yes\n" +
		"  3.  rm global-env-requirements.txt\n"

	VenvRemovingGlobalFmt     = "Uninstalling the global copy of %s"
	VenvRemoveGlobalFailedFmt = "uninstall the global copy of %s: %w"

	// PathregAddingSnippetFmt logs a PATH snippet being appended to a profile.
	PathregAddingSnippetFmt   = "Adding %s to PATH in %s"
	PathregRemovingSnippetFmt = "Removing %s from PATH in %s"
	PathregStatProfileFmt     = "stat profile %s: %w"
	PathregCreateProfileFmt   = "create profile %s: %w"
	PathregReadProfileFmt     = "read profile %s: %w"
	PathregOpenProfileFmt     = "open profile %s: %w"
	PathregWriteProfileFmt    = "write profile %s: %w"

	PathregAddingUserPathFmt   = "Adding %s to the user PATH"
	PathregRemovingUserPathFmt = "Removing %s from the user PATH"
	PathregBroadcastWarningFmt = "Could not notify running programs of the PATH change; restart your terminal: %v"
	PathregUserBaseUnavailable = "the interpreter user base is unavailable"
	PathregUserBaseFmt         = "determine the interpreter user base: %w"
	PathregRemoveLinkFmt       = "remove %s: %w"
	PathregSymlinkingFmt       = "Linking %s -> %s"
	PathregSymlinkFallbackFmt  = "Symlinks are not permitted, copying instead: %v"
	PathregCopyExecutableFmt   = "copy %s to %s: %w"

	PathregOpenRegistryFmt     = "open HKCU\\Environment: %w"
	PathregReadRegistryFmt     = "read HKCU\\Environment\\PATH: %w"
	PathregWriteRegistryFmt    = "write HKCU\\Environment\\PATH: %w"
	PathregBroadcastFailedFmt  = "broadcast environment change: %w"
	PathregRegistryUnsupported = "the Windows registry is only available on Windows"

	PathregFishAddingFmt   = "Adding %s to fish_user_paths"
	PathregFishRemovingFmt = "Removing %s from fish_user_paths"
	PathregFishFailedFmt   = "update fish_user_paths: %w"
)
