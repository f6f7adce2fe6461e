package linter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/summit/converter"
	"github.com/bloodmagesoftware/summit/mapdoc"
)

type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "ERROR"
	}
	return "WARN"
}

// Finding is one problem found in a map document.
type Finding struct {
	Path     string
	Severity Severity
	Room     string
	Message  string
}

func (f Finding) String() string {
	where := f.Path
	if f.Room != "" {
		where += " [" + f.Room + "]"
	}
	return fmt.Sprintf("  [%s] %s\n    %s", f.Severity, where, f.Message)
}

// Options controls a lint run.
type Options struct {
	TileSize float64
	// Strict turns warnings into failures.
	Strict bool
}

// Lint checks every map document in paths. Directories are walked for
// .json files.
func Lint(paths []string, opts Options) error {
	fmt.Println("🔍 Linting map documents...")

	var files []string
	for _, p := range paths {
		found, err := collect(p)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}

	failures := 0
	total := 0
	for _, file := range files {
		findings := CheckFile(file, opts.TileSize)
		for _, f := range findings {
			fmt.Println(f)
			fmt.Println(strings.Repeat("-", 60))
			if f.Severity == Error || opts.Strict {
				failures++
			}
		}
		total += len(findings)
	}

	if failures > 0 {
		return fmt.Errorf("linter failed: %d of %d findings are errors", failures, total)
	}

	fmt.Printf("✅ Linter Passed: %d files, %d warnings.\n", len(files), total)
	return nil
}

func collect(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(p), ".json") && !converter.IsHashCache(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", path, err)
	}
	return files, nil
}

// CheckFile loads one document and checks it.
func CheckFile(path string, tileSize float64) []Finding {
	doc, err := mapdoc.ReadFile(path, tileSize)
	if err != nil {
		return []Finding{{Path: path, Severity: Error, Message: err.Error()}}
	}
	findings := Check(doc)
	for i := range findings {
		findings[i].Path = path
	}
	return findings
}

// Check inspects a parsed document for problems that do not prevent
// loading but usually indicate a mistake.
func Check(doc *mapdoc.Document) []Finding {
	var findings []Finding
	rooms := doc.Rooms()

	seen := make(map[string]int)
	for i, r := range rooms {
		if first, ok := seen[r.Name]; ok {
			findings = append(findings, Finding{
				Severity: Warning,
				Room:     r.Name,
				Message:  fmt.Sprintf("room %d reuses the name of room %d", i, first),
			})
			continue
		}
		seen[r.Name] = i
	}

	for i := range rooms {
		for j := i + 1; j < len(rooms); j++ {
			if rooms[i].WorldRect().Overlaps(rooms[j].WorldRect()) {
				findings = append(findings, Finding{
					Severity: Warning,
					Room:     rooms[j].Name,
					Message:  fmt.Sprintf("overlaps room %q; clicks in the overlap edit %q", rooms[i].Name, rooms[i].Name),
				})
			}
		}
	}

	for _, r := range rooms {
		if bad := unknownTiles(r.Grid().Cells()); bad != "" {
			findings = append(findings, Finding{
				Severity: Warning,
				Room:     r.Name,
				Message:  fmt.Sprintf("unknown tile characters %q", bad),
			})
		}
	}

	return findings
}

func unknownTiles(cells []rune) string {
	var bad []rune
	seen := make(map[rune]bool)
	for _, c := range cells {
		if isTileChar(c) || seen[c] {
			continue
		}
		seen[c] = true
		bad = append(bad, c)
	}
	return string(bad)
}

func isTileChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
