package cmd

import (
	"fmt"
	"strings"

	"github.com/bloodmagesoftware/summit/grid"
	"github.com/bloodmagesoftware/summit/mapdoc"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var infoCmd = &cobra.Command{
	Use:   "info {map.json}",
	Short: "List the rooms of a map",
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
		fmt.Print(roomTable(args[0], doc))
		return nil
	},
}

type column struct {
	title string
	width int
	right bool
}

var roomColumns = []column{
	{"#", 4, true},
	{"name", 20, false},
	{"x", 8, true},
	{"y", 8, true},
	{"tiles", 9, true},
	{"solid", 7, true},
}

func cell(c column, text string) string {
	style := lipgloss.NewStyle().Width(c.width).PaddingRight(1)
	if c.right {
		style = style.Align(lipgloss.Right)
	}
	return style.Render(text)
}

func roomTable(path string, doc *mapdoc.Document) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s: %d rooms, tile size %v", path, doc.Len(), doc.TileSize())))
	b.WriteString("\n")

	var header []string
	for _, c := range roomColumns {
		header = append(header, headerStyle.Render(cell(c, c.title)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for i, r := range doc.Rooms() {
		solid := 0
		for _, ch := range r.Grid().Cells() {
			if grid.IsSolid(ch) {
				solid++
			}
		}
		name := r.Name
		if name == "" {
			name = dimStyle.Render("(unnamed)")
		}
		values := []string{
			fmt.Sprint(i),
			name,
			fmt.Sprint(r.X),
			fmt.Sprint(r.Y),
			fmt.Sprintf("%dx%d", r.Cols(), r.Rows()),
			fmt.Sprint(solid),
		}
		row := make([]string, len(values))
		for j, v := range values {
			row[j] = cell(roomColumns[j], v)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
