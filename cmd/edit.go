package cmd

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/widget/material"
	"github.com/bloodmagesoftware/summit/converter"
	"github.com/bloodmagesoftware/summit/editor"
	"github.com/bloodmagesoftware/summit/level"
	"github.com/bloodmagesoftware/summit/project"
	"github.com/bloodmagesoftware/summit/watch"
	"github.com/spf13/cobra"
)

var (
	editAllRooms  bool
	editWatch     bool
	editNoConvert bool
)

var editCmd = &cobra.Command{
	Use:   "edit {map.json|map.bin}",
	Short: "Edit the specified map",
	Long: `Opens the visual editor for a map document. Binary maps are converted to
JSON first and converted back on every save.`,
	Args: cobra.ExactArgs(1),
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
		if editNoConvert {
			saver = converter.Nop{}
		}

		log.Printf("loading map %s", mapPath)
		session, err := editor.Open(mapPath, editor.Options{
			View:      cfg.View(),
			MaxUndo:   cfg.MaxUndo,
			Converter: saver,
		})
		if err != nil {
			return err
		}
		session.SetAllRooms(editAllRooms)

		go func() {
			window := new(app.Window)
			window.Option(app.Title("Summit - " + filepath.Base(args[0])))
			window.Perform(system.ActionMaximize)
			err := run(window, session, cfg.Keys, mapPath)
			if err != nil {
				log.Fatal(err)
			}
			os.Exit(0)
		}()
		app.Main()

		return nil
	},
}

func run(window *app.Window, session *editor.Session, keys project.KeyConfig, mapPath string) error {
	theme := material.NewTheme()
	ed := level.NewEditor(theme, session, keys)

	if editWatch {
		w, err := watch.New(mapPath)
		if err != nil {
			log.Printf("warning: failed to watch %s: %v", mapPath, err)
		} else {
			defer w.Close()
			reloads := make(chan string, 1)
			ed.Watch(reloads)
			go func() {
				_ = watch.Run(context.Background(), w, func(path string) {
					select {
					case reloads <- path:
					default:
					}
					window.Invalidate()
				}, func(err error) {
					log.Printf("watch: %v", err)
				})
			}()
		}
	}

	var ops op.Ops
	for {
		switch e := window.Event().(type) {
		case app.DestroyEvent:
			if ed.HasUnsavedChanges() {
				log.Printf("warning: closing with unsaved changes to %s", session.Path())
			}
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			ed.Layout(gtx)
			e.Frame(gtx.Ops)

			if ed.ShouldClose() {
				window.Perform(system.ActionClose)
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().BoolVar(&editAllRooms, "all-rooms", true, "Show every room at its world position")
	editCmd.Flags().BoolVar(&editWatch, "watch", false, "Reload the map when it changes on disk")
	editCmd.Flags().BoolVar(&editNoConvert, "no-convert", false, "Do not run the map converter after saving")
}
