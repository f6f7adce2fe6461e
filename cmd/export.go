package cmd

import (
	"fmt"

	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/bloodmagesoftware/summit/preview"
	"github.com/spf13/cobra"
)

var (
	exportOutput   string
	exportRoom     int
	exportScale    float64
	exportNoLabels bool
	exportNoGrid   bool
)

var exportCmd = &cobra.Command{
	Use:   "export {map.json}",
	Short: "Render a map to a PNG or QOI image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if exportOutput == "" {
			return fmt.Errorf("missing --output")
		}

		doc, err := mapdoc.ReadFile(args[0], cfg.TileSize)
		if err != nil {
			return err
		}

		opts := preview.DefaultOptions()
		opts.Room = exportRoom
		opts.Scale = exportScale
		opts.Labels = !exportNoLabels
		opts.Grid = !exportNoGrid

		img, err := preview.Render(doc, opts)
		if err != nil {
			return err
		}
		if err := preview.WriteFile(exportOutput, img); err != nil {
			return err
		}

		b := img.Bounds()
		fmt.Printf("✅ Wrote %s (%dx%d)\n", exportOutput, b.Dx(), b.Dy())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output image (.png or .qoi)")
	exportCmd.Flags().IntVar(&exportRoom, "room", preview.AllRooms, "Room index to render alone (-1 renders every room)")
	exportCmd.Flags().Float64Var(&exportScale, "scale", 1, "Pixels per world unit")
	exportCmd.Flags().BoolVar(&exportNoLabels, "no-labels", false, "Do not draw room names")
	exportCmd.Flags().BoolVar(&exportNoGrid, "no-grid", false, "Do not draw grid lines")
}
