package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-scores/internal"
	"github.com/rocketscienceinc/tictactoe-scores/internal/config"
	"github.com/rocketscienceinc/tictactoe-scores/internal/entity"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "tictactoe",
	Short:         "Tic-tac-toe with persisted session and high scores",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over WebSocket and the scores over HTTP",
	RunE: func(_ *cobra.Command, _ []string) error {
		conf := config.MustLoad(configPath)
		logger := initLogger(conf, os.Stdout)

		if err := app.RunApp(logger, conf); err != nil {
			return fmt.Errorf("app run failed: %w", err)
		}
		return nil
	},
}

var singlePlayer bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE: func(_ *cobra.Command, _ []string) error {
		conf := config.MustLoad(configPath)

		// stdout belongs to the game screen
		logSink := io.Discard
		if conf.LogFile != "" {
			logFile, err := os.OpenFile(conf.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer logFile.Close()
			logSink = logFile
		}

		mode := entity.TwoPlayer
		if singlePlayer {
			mode = entity.SinglePlayer
		}

		if err := app.RunTerminal(initLogger(conf, logSink), conf, mode); err != nil {
			return fmt.Errorf("terminal run failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.yml", "path to the config file")
	playCmd.Flags().BoolVarP(&singlePlayer, "single", "s", false, "play against the computer")

	rootCmd.AddCommand(serveCmd, playCmd)
}

// main - is the entry point of the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initialize logger.
func initLogger(conf *config.Config, sink io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: level}))
}
