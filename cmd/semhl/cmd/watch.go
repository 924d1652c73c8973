package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/corey/semhl/internal/adapters/filesystem"
	"github.com/corey/semhl/internal/adapters/fsnotify"
	"github.com/corey/semhl/internal/app"
	"github.com/corey/semhl/internal/domain/highlight"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE...",
	Short: "Highlight files again whenever they are saved",
	Long:  "Highlights each file once, then reparses it from scratch after every write. Stops on Ctrl-C.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)

	paths, err := app.ExpandPaths(args)
	if err != nil {
		return err
	}
	wr, err := newWriter(formatFlag, cmd.OutOrStdout(), resolveColor(colorFlag))
	if err != nil {
		return err
	}
	fe, err := newFrontend()
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	h := app.NewHighlighter(fe, filesystem.NewOsSizer(), config.Flags)
	report := func(path string, res *highlight.Result, err error) {
		if err != nil {
			printError(os.Stderr, err)
			return
		}
		if err := wr.flush(path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("write output")
			return
		}
		log.Info().Str("path", path).Int("tokens", len(res.Highlights)).Dur("elapsed", res.Elapsed).Msg("highlighted")
	}

	log.Info().Strs("paths", paths).Msg("watching")
	return h.Watch(ctx, w, paths, wr.overlay, report)
}
