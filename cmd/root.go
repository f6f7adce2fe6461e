package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/summit/converter"
	"github.com/bloodmagesoftware/summit/project"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "summit",
	Short: "Summit - tile map editor for Celeste-style maps",
	Long: `Summit edits the solid tiles of Celeste-style maps.
It opens map documents in a visual editor, paints tiles from the command line,
lints and formats documents, renders previews, and runs the external map
converter after every save.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Include source locations in log output")
}

// loadConfig returns the summit.yaml of the enclosing project, or defaults.
func loadConfig() (*project.Config, error) {
	cfg, err := project.Load()
	if err != nil {
		return nil, err
	}
	if verbose {
		log.Printf("using config %q (tile size %v)", cfg.Name, cfg.TileSize)
	}
	return cfg, nil
}

// resolveMap returns the JSON document to edit for path. Binary maps are
// converted to a scratch JSON file first, and conv is pointed back at the
// binary so saves overwrite it.
func resolveMap(ctx context.Context, path string, conv *converter.Exec) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".bin") {
		return path, nil
	}
	tmp := converter.TempJSONPath(path)
	fmt.Printf("Converting %s -> %s\n", path, tmp)
	if err := conv.ToJSON(ctx, path, tmp); err != nil {
		return "", err
	}
	conv.Output = path
	return tmp, nil
}
