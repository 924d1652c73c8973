package cmd

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/corey/semhl/internal/adapters/filesystem"
	"github.com/corey/semhl/internal/adapters/socket"
	"github.com/corey/semhl/internal/app"
)

var highlightCmd = &cobra.Command{
	Use:   "highlight FILE|PATTERN...",
	Short: "Highlight files",
	Long: "Parses each file and prints one highlight instruction per token.\n" +
		"Patterns like 'src/**/*.cpp' are expanded; files are processed one at a time.\n\n" +
		"Exit status: 0 ok, 1 usage or I/O error, 2 compile error, 3 range error, 4 internal error.",
	Args: cobra.MinimumNArgs(1),
	RunE: runHighlight,
}

var (
	formatFlag string
	colorFlag  string
	remoteFlag bool
)

func init() {
	for _, c := range []*cobra.Command{highlightCmd, watchCmd} {
		c.Flags().StringVar(&formatFlag, "format", formatVim, "output format: vim, json or ansi")
		c.Flags().StringVar(&colorFlag, "color", "auto", "ansi colours: auto, always or never")
	}
	highlightCmd.Flags().BoolVar(&remoteFlag, "remote", false, "use the running daemon when reachable")
}

func runHighlight(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	paths, err := app.ExpandPaths(args)
	if err != nil {
		return err
	}
	wr, err := newWriter(formatFlag, cmd.OutOrStdout(), resolveColor(colorFlag))
	if err != nil {
		return err
	}

	if remoteFlag {
		client := socket.NewClient(config.SocketPath(projectRoot()))
		if client.Ping() {
			return highlightRemote(ctx, client, wr, paths)
		}
		zerolog.Ctx(ctx).Warn().Msg("daemon not running, highlighting locally")
	}

	fe, err := newFrontend()
	if err != nil {
		return err
	}
	h := app.NewHighlighter(fe, filesystem.NewOsSizer(), config.Flags)
	results, errs := h.HighlightAll(ctx, paths, wr.overlay)
	for _, res := range results {
		errs = multierr.Append(errs, wr.flush(res.Path))
	}
	return errs
}

func highlightRemote(ctx context.Context, client *socket.Client, wr writer, paths []string) error {
	var errs error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return errors.WithStack(err)
		}
		res, err := client.Highlight(abs)
		if err != nil {
			// Transport errors end the batch; pipeline failures do not.
			return multierr.Append(errs, err)
		}
		errs = multierr.Append(errs, replay(wr, path, res))
	}
	return errs
}
