package logging

// Config defines the logging section of the configuration file.
type Config struct {
	// Level is the minimum level to output ("debug", "info", "warn", "error").
	// PLAYCORE_LOG_LEVEL overrides it.
	Level string `mapstructure:"level"`

	// Format is "text", "json" or "" (auto: text on a terminal, json otherwise).
	Format string `mapstructure:"format"`

	// File, when set, receives a copy of every log line.
	File string `mapstructure:"file"`

	// Stderr controls when logs go to stderr: "auto" (default), "always" or
	// "never". In auto mode logs stay off an interactive terminal unless the
	// level is debug, so they do not scribble over the player UI.
	Stderr string `mapstructure:"stderr"`
}
