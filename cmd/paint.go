package cmd

import (
	"fmt"

	"github.com/bloodmagesoftware/summit/converter"
	"github.com/bloodmagesoftware/summit/editor"
	"github.com/spf13/cobra"
)

var (
	paintRoom      int
	paintCol       int
	paintRow       int
	paintRemove    bool
	paintNoConvert bool
)

var paintCmd = &cobra.Command{
	Use:   "paint {map.json|map.bin}",
	Short: "Place or remove a single tile and save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		conv := cfg.Converter()
		mapPath, err := resolveMap(cmd.Context(), args[0], conv)
		if err != nil {
			return err
		}
		var saver converter.Converter = conv
		if paintNoConvert {
			saver = converter.Nop{}
		}

		session, err := editor.Open(mapPath, editor.Options{View: cfg.View(), Converter: saver})
		if err != nil {
			return err
		}

		changed, err := session.PaintTile(paintRoom, paintCol, paintRow, !paintRemove)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Println("Tile already set, nothing to do")
			return nil
		}
		if err := session.Save(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("✅ Updated room %d tile (%d, %d)\n", paintRoom, paintCol, paintRow)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paintCmd)
	paintCmd.Flags().IntVar(&paintRoom, "room", 0, "Room index")
	paintCmd.Flags().IntVar(&paintCol, "col", 0, "Tile column within the room")
	paintCmd.Flags().IntVar(&paintRow, "row", 0, "Tile row within the room")
	paintCmd.Flags().BoolVar(&paintRemove, "remove", false, "Clear the tile instead of placing a solid")
	paintCmd.Flags().BoolVar(&paintNoConvert, "no-convert", false, "Do not run the map converter after saving")
}
