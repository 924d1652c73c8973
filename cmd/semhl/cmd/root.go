package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "semhl",
	Short: "Semantic highlighting for C and C++",
	Long: "Parses a file with libclang and colours every token by what it means: " +
		"types, functions, calls, variables, members, macros and literals.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	configFlag   string
	logLevelFlag string
	extraFlags   []string
)

// Set by setup before any command runs.
var (
	fsys   afero.Fs = afero.NewOsFs()
	config *app.Config
)

// projectRoot returns the project root (cwd by default).
func projectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return dir
}

// setup loads the configuration and installs the logger in the command context.
func setup(cmd *cobra.Command, args []string) error {
	path, explicit := configFlag, true
	if path == "" {
		path, explicit = filepath.Join(projectRoot(), app.ConfigFileName), false
	}
	cfg, err := app.LoadConfig(fsys, path, explicit)
	if err != nil {
		return err
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	config = cfg.WithFlags(extraFlags...)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isStderrTTY()}).
		Level(level).With().Timestamp().Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		printError(os.Stderr, err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ./"+app.ConfigFileName+")")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringArrayVarP(&extraFlags, "flag", "f", nil, "extra compiler flag, repeatable (e.g. --flag=-DDEBUG)")

	rootCmd.AddCommand(highlightCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(groupsCmd)
}
