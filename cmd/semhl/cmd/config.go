package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/semhl/internal/adapters/socket"
	"github.com/corey/semhl/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the effective configuration, socket path and daemon status. No daemon required.",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default " + app.ConfigFileName + " in the current directory",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := projectRoot()
	sockPath := config.SocketPath(root)
	running := socket.NewClient(sockPath).Ping()

	daemonStatus := mark(false) + " not running"
	if running {
		daemonStatus = mark(true) + " running"
	}

	fmt.Println(bold("⚡ semhl config"))
	fmt.Printf("  Root:       %s\n", root)
	fmt.Printf("  Socket:     %s\n", sockPath)
	fmt.Printf("  Daemon:     %s\n", daemonStatus)
	fmt.Println()

	out, err := config.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(projectRoot(), app.ConfigFileName)
	if err := app.WriteConfig(fsys, path, app.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("⚡ wrote %s\n", path)
	return nil
}
