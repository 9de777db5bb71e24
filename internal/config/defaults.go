package config

const (
	defaultDataDir      = "~/.local/share/queuectl"
	defaultLogDir       = "~/.local/share/queuectl/logs"
	defaultWorkerCount  = 1
	defaultPollInterval = 1
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Workers: Workers{
			Count:        defaultWorkerCount,
			PollInterval: defaultPollInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
