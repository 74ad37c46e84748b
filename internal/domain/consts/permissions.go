package consts

// Recommended permissions for different types of files and directories mdload might create.
const (
	// ** World Readable **
	// Media directories - world readable
	PermsOutputDir = 0o755

	// Other files
	PermsLogFile = 0o644

	// ** Private **
	// Sensitive files - owner only
	PermsHomeProgDir = 0o750
	PermsCookieFile  = 0o600 // Private cookie files
	PermsHistoryFile = 0o600
)
