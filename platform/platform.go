package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Converter binaries known to read and write the map format, in lookup order.
var knownConverters = []string{"cairn", "celeste-map-convert"}

// ExecutableName returns name with the host's executable suffix.
func ExecutableName(name string) string {
	if runtime.GOOS == "windows" && !strings.EqualFold(filepath.Ext(name), ".exe") {
		return name + ".exe"
	}
	return name
}

// ResolveConverter finds the converter executable. An explicit command is
// looked up as given; otherwise the known converter names are tried.
func ResolveConverter(command string) (string, error) {
	candidates := knownConverters
	if command != "" {
		candidates = []string{command}
	}

	for _, c := range candidates {
		if strings.ContainsRune(c, filepath.Separator) || strings.ContainsRune(c, '/') {
			// a path is used verbatim; exec reports a missing file later
			return c, nil
		}
		if path, err := exec.LookPath(ExecutableName(c)); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("map converter not found in PATH (tried %s); set converter.command in summit.yaml",
		strings.Join(candidates, ", "))
}
