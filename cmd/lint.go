package cmd

import (
	"github.com/bloodmagesoftware/summit/linter"
	"github.com/spf13/cobra"
)

var lintStrict bool

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Check map documents for common mistakes",
	Long: `Loads every map document (directories are searched for .json files) and
reports load errors, duplicate room names, overlapping rooms and unknown tile
characters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if len(args) == 0 {
			args = []string{"."}
		}
		return linter.Lint(args, linter.Options{TileSize: cfg.TileSize, Strict: lintStrict})
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Fail on warnings")
}
