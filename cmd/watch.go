package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/bloodmagesoftware/summit/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch {map.json|dir...}",
	Short: "Run the map converter whenever a map document changes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		w, err := watch.New(args...)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		conv := cachedConverter(cfg, args[0])
		fmt.Println("👀 Watching for changes, press Ctrl+C to stop")
		err = watch.Run(ctx, w, func(path string) {
			// half-written or broken documents are reported, not converted
			if _, err := mapdoc.ReadFile(path, cfg.TileSize); err != nil {
				log.Printf("skipping %v", err)
				return
			}
			if err := conv.Convert(ctx, path); err != nil {
				log.Printf("convert %s: %v", path, err)
				return
			}
			fmt.Printf("✅ Converted %s\n", path)
		}, func(err error) {
			log.Printf("watch: %v", err)
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
