package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/timaa2k/motherlib"
)

var rootCmd = &cobra.Command{
	Use:   "mothership",
	Short: "Tag-addressed content store CLI",
	Long:  "CLI for storing and retrieving tagged content on a mothership server.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/mothership/config.yaml)")
	rootCmd.PersistentFlags().String("addr", "", "server address (default: http://localhost:8080)")
	rootCmd.PersistentFlags().String("token", "", "bearer token")
	rootCmd.PersistentFlags().Int("retries", 3, "request attempt budget")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr"))
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	viper.BindPFlag("retries", rootCmd.PersistentFlags().Lookup("retries"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MOTHERSHIP")
	viper.AutomaticEnv()
	viper.SetDefault("addr", "http://localhost:8080")
	viper.SetDefault("retries", 3)
	viper.SetDefault("log_level", "warn")

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mothership")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "mothership")
	}
	return ".mothership"
}

func newLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      parseLevel(viper.GetString("log_level")),
		TimeFormat: time.TimeOnly,
	}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newClient() (*motherlib.Client, error) {
	opts := []motherlib.Option{
		motherlib.WithRetries(viper.GetInt("retries")),
		motherlib.WithLogger(newLogger()),
	}
	if token := viper.GetString("token"); token != "" {
		opts = append(opts, motherlib.WithBearerToken(token))
	}
	return motherlib.New(viper.GetString("addr"), opts...)
}
