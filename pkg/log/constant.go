package log

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"

	EncodingConsole = "console"
	EncodingJSON    = "json"

	// DefaultLevel is used when the configured level does not parse.
	DefaultLevel = "info"
)

// Encoder keys of every log line.
const (
	keyLevel   = "LEVEL"
	keyCaller  = "CALLER"
	keyTime    = "TIME"
	keyName    = "NAME"
	keyMessage = "MESSAGE"
)
