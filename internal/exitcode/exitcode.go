package exitcode

const (
	Success      = 0
	UsageError   = 1
	ConfigError  = 2
	DBConnError  = 3
	BindError    = 4
	MigrateError = 5
	ClientError  = 6
)
