package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/spf13/cobra"
)

var (
	solidsRoom int
	solidsCopy bool
)

var solidsCmd = &cobra.Command{
	Use:   "solids {map.json}",
	Short: "Print the solids block of a room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		doc, err := mapdoc.ReadFile(args[0], cfg.TileSize)
		if err != nil {
			return err
		}
		text, err := doc.SolidsText(solidsRoom)
		if err != nil {
			return err
		}

		if solidsCopy {
			if err := clipboard.WriteAll(text); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Println("✅ Copied solids to clipboard")
			return nil
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solidsCmd)
	solidsCmd.Flags().IntVar(&solidsRoom, "room", 0, "Room index")
	solidsCmd.Flags().BoolVar(&solidsCopy, "copy", false, "Copy to the clipboard instead of printing")
}
