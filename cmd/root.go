package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	perrors "github.com/AJMerr/playcore/internal/errors"
	"github.com/AJMerr/playcore/internal/lastfm"
	"github.com/AJMerr/playcore/internal/logging"
	"github.com/AJMerr/playcore/internal/paths"
)

var rootCmd = &cobra.Command{
	Use:           "playcore",
	Short:         "Player state core with last.fm scrobbling",
	SilenceErrors: true,
}

// Called by main.go
func Execute() {
	err := rootCmd.Execute()
	var pe *perrors.PlayError
	if errors.As(err, &pe) && viper.GetString("log.format") == "json" {
		fmt.Fprintln(os.Stderr, pe.ToJSON())
		os.Exit(1)
	}
	cobra.CheckErr(err)
}

func init() {
	// Defaults
	viper.SetDefault("data_dir", paths.DataDir())
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "")
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.stderr", "auto")
	viper.SetDefault("lastfm.endpoint", lastfm.DefaultEndpoint)
	viper.SetDefault("lastfm.timeout_ms", 10000)

	// Flags
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (env PLAYCORE_DATA_DIR)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (env PLAYCORE_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().Int("timeout", 0, "last.fm request timeout ms (env PLAYCORE_LASTFM_TIMEOUT_MS)")
	rootCmd.PersistentFlags().String("config", defaultConfigPath(), "Path to config file")

	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("lastfm.timeout_ms", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("config_path", rootCmd.PersistentFlags().Lookup("config"))

	// env
	_ = viper.BindEnv("data_dir", "PLAYCORE_DATA_DIR")
	_ = viper.BindEnv("lastfm.api_key", "PLAYCORE_LASTFM_API_KEY")
	_ = viper.BindEnv("lastfm.api_secret", "PLAYCORE_LASTFM_API_SECRET")
	_ = viper.BindEnv("lastfm.endpoint", "PLAYCORE_LASTFM_ENDPOINT")
	_ = viper.BindEnv("lastfm.timeout_ms", "PLAYCORE_LASTFM_TIMEOUT_MS")

	// Loads TOML config if present, then configures logging from it
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("config_path")
		viper.SetConfigFile(path)
		viper.SetConfigType("toml")
		_ = viper.ReadInConfig()

		var lc logging.Config
		if err := viper.UnmarshalKey("log", &lc); err != nil {
			return perrors.ConfigInvalid(fmt.Sprintf("log section: %v", err))
		}
		logging.Configure(lc)

		if viper.GetString("data_dir") == "" {
			return perrors.ConfigInvalid("no data directory: set data_dir or PLAYCORE_HOME")
		}
		return nil
	}
}

func defaultConfigPath() string {
	return filepath.Join(paths.ConfigDir(), "config.toml")
}

func lastFMTimeout() time.Duration {
	return time.Duration(viper.GetInt("lastfm.timeout_ms")) * time.Millisecond
}

// newLastFMClient returns nil when no API credentials are configured.
func newLastFMClient() *lastfm.HTTPClient {
	key, secret := viper.GetString("lastfm.api_key"), viper.GetString("lastfm.api_secret")
	if key == "" || secret == "" {
		return nil
	}
	return lastfm.NewHTTPClient(key, secret,
		lastfm.WithEndpoint(viper.GetString("lastfm.endpoint")),
		lastfm.WithTimeout(lastFMTimeout()),
	)
}
