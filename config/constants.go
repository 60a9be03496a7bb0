package config

// Log verbosity values accepted in overrides, from quietest to loudest.
const (
	ErrorVerbose = iota + 1
	WarnVerbose
	InfoVerbose
	DebugVerbose
	TraceVerbose
)

// Keys recognised in .env override files.
const (
	EnvCwd             = "FAKEFS_CWD"
	EnvDefaultEncoding = "FAKEFS_DEFAULT_ENCODING"
	EnvVerbose         = "FAKEFS_VERBOSE"
)
