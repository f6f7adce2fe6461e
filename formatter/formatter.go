package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bloodmagesoftware/summit/mapdoc"
)

// Format rewrites each map document in its canonical layout.
func Format(paths []string, tileSize float64) error {
	fmt.Println("Formatting map documents...")

	changed := 0
	for _, path := range paths {
		doc, diff, err := canonical(path, tileSize)
		if err != nil {
			return err
		}
		if !diff {
			continue
		}
		if err := doc.WriteFile(path); err != nil {
			return err
		}
		fmt.Printf("  formatted %s\n", path)
		changed++
	}

	fmt.Printf("✅ Formatting completed (%d of %d files changed)\n", changed, len(paths))
	return nil
}

// Check reports documents that are not in canonical layout without
// modifying them.
func Check(paths []string, tileSize float64) error {
	fmt.Println("Checking map document formatting...")

	var unformatted []string
	for _, path := range paths {
		_, diff, err := canonical(path, tileSize)
		if err != nil {
			return err
		}
		if diff {
			fmt.Printf("  %s is not formatted\n", path)
			unformatted = append(unformatted, path)
		}
	}
	if len(unformatted) > 0 {
		return fmt.Errorf("%d files need formatting", len(unformatted))
	}

	fmt.Println("✅ Format check completed")
	return nil
}

func canonical(path string, tileSize float64) (*mapdoc.Document, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := mapdoc.Decode(bytes.NewReader(raw), tileSize)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", path, err)
	}
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return nil, false, fmt.Errorf("encoding %s: %w", path, err)
	}
	return doc, !bytes.Equal(raw, buf.Bytes()), nil
}
