package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/corey/semhl/internal/adapters/socket"
	"github.com/corey/semhl/internal/app"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the semhl daemon",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon in the foreground",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check daemon status",
	RunE:  runDaemonStatus,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	sockPath := config.SocketPath(root)

	// Check if already running
	client := socket.NewClient(sockPath)
	if client.Ping() {
		fmt.Println("⚡ daemon already running")
		return nil
	}

	fe, err := newFrontend()
	if err != nil {
		return err
	}
	a, err := app.New(app.Options{ProjectRoot: root, Config: config, Frontend: fe, Fs: fsys})
	if err != nil {
		return errors.Errorf("init: %w", err)
	}

	// The daemon also logs to .semhl/log/daemon.log.
	if err := a.Paths.EnsureDirs(fsys); err != nil {
		return err
	}
	logFile, err := os.OpenFile(a.Paths.DaemonLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer logFile.Close()
	console := zerolog.Ctx(cmd.Context())
	logger := console.Output(zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isStderrTTY()},
		logFile,
	))
	ctx := logger.WithContext(cmd.Context())

	if err := a.Start(ctx); err != nil {
		return err
	}
	fmt.Printf("⚡ semhl daemon started at %s\n", sockPath)

	// Wait for a signal or a remote shutdown
	select {
	case <-ctx.Done():
	case <-a.Server.ShutdownCh():
	}

	fmt.Println("\n⚡ shutting down...")
	return a.Stop()
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(config.SocketPath(projectRoot()))

	if !client.Ping() {
		fmt.Println("⚡ daemon is not running")
		return nil
	}

	if err := client.Shutdown(); err != nil {
		return err
	}

	fmt.Println("⚡ daemon stopped")
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	client := socket.NewClient(config.SocketPath(projectRoot()))

	if !client.Ping() {
		fmt.Println("⚡ semhl daemon is not running")
		return nil
	}

	health, err := client.Health()
	if err != nil {
		return err
	}

	fmt.Print(formatHealth(health))
	return nil
}
