package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/bloodmagesoftware/summit/converter"
	"github.com/bloodmagesoftware/summit/project"
	"github.com/spf13/cobra"
)

var convertForce bool

var convertCmd = &cobra.Command{
	Use:   "convert {map.json...}",
	Short: "Convert map documents to the game's binary format",
	Long: `Runs the configured converter for each document. Documents that have not
changed since their last conversion are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		conv := cachedConverter(cfg, args[0])
		for _, path := range args {
			if err := conv.Convert(cmd.Context(), path); err != nil {
				return err
			}
		}
		fmt.Printf("✅ Converted %d maps\n", len(args))
		return nil
	},
}

// cachedConverter wraps the configured converter in a hash cache stored in
// the project root, or next to the first map outside a project.
func cachedConverter(cfg *project.Config, firstMap string) converter.Converter {
	if convertForce {
		return cfg.Converter()
	}
	dir := filepath.Dir(firstMap)
	if root, err := project.FindProjectRoot(); err == nil {
		dir = root
	}
	return &converter.Cached{
		Next:  cfg.Converter(),
		Cache: converter.LoadHashCache(filepath.Join(dir, converter.HashCacheFile)),
	}
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().BoolVar(&convertForce, "force", false, "Convert even if the document is unchanged")
}
