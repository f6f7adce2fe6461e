package cmd

import (
	"github.com/bloodmagesoftware/summit/formatter"
	"github.com/spf13/cobra"
)

var (
	fmtCheck bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt {map.json...}",
	Short: "Format map documents",
	Long:  `Rewrites map documents as indented JSON in a stable attribute order.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if fmtCheck {
			return formatter.Check(args, cfg.TileSize)
		}

		return formatter.Format(args, cfg.TileSize)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Check formatting without modifying files")
}
