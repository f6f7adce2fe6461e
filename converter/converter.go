package converter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bloodmagesoftware/summit/platform"
)

// ErrConversion is returned when the external converter fails.
var ErrConversion = errors.New("map conversion failed")

// Converter turns a saved JSON document into the game's binary map.
type Converter interface {
	Convert(ctx context.Context, jsonPath string) error
}

// Default argument templates. {in} and {out} are replaced per call.
var (
	DefaultSaveArgs = []string{"{in}", "{out}"}
	DefaultLoadArgs = []string{"{in}", "{out}"}
)

// Exec runs an external converter process.
type Exec struct {
	Command  string   // executable name or path; empty tries the known names
	SaveArgs []string // arguments for JSON -> binary
	LoadArgs []string // arguments for binary -> JSON
	// Output is the binary path written by Convert. When empty the JSON
	// path's extension is replaced with ".bin".
	Output string
}

// Convert implements Converter.
func (e *Exec) Convert(ctx context.Context, jsonPath string) error {
	out := e.Output
	if out == "" {
		out = BinPath(jsonPath)
	}
	args := e.SaveArgs
	if len(args) == 0 {
		args = DefaultSaveArgs
	}
	fmt.Printf("Converting %s -> %s\n", jsonPath, out)
	return e.run(ctx, args, jsonPath, out)
}

// ToJSON converts a binary map to a JSON document at jsonPath.
func (e *Exec) ToJSON(ctx context.Context, binPath, jsonPath string) error {
	args := e.LoadArgs
	if len(args) == 0 {
		args = DefaultLoadArgs
	}
	return e.run(ctx, args, binPath, jsonPath)
}

func (e *Exec) run(ctx context.Context, templates []string, in, out string) error {
	bin, err := platform.ResolveConverter(e.Command)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConversion, err)
	}

	args := expand(templates, in, out)
	cmd := exec.CommandContext(ctx, bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v\nOutput: %s", ErrConversion, bin, strings.Join(args, " "), err, string(output))
	}
	return nil
}

func expand(templates []string, in, out string) []string {
	args := make([]string, len(templates))
	r := strings.NewReplacer("{in}", in, "{out}", out)
	for i, t := range templates {
		args[i] = r.Replace(t)
	}
	return args
}

// BinPath returns the binary map path for a JSON document path.
func BinPath(jsonPath string) string {
	return strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".bin"
}

// TempJSONPath returns the scratch JSON path used while editing a binary map.
func TempJSONPath(binPath string) string {
	stem := strings.TrimSuffix(filepath.Base(binPath), filepath.Ext(binPath))
	return filepath.Join(os.TempDir(), stem+"_temp.json")
}

// Nop is a Converter that does nothing.
type Nop struct{}

// Convert implements Converter.
func (Nop) Convert(context.Context, string) error { return nil }

// Recorder is a Converter that records every call and returns Err.
type Recorder struct {
	Calls []string
	Err   error
}

// Convert implements Converter.
func (r *Recorder) Convert(_ context.Context, jsonPath string) error {
	r.Calls = append(r.Calls, jsonPath)
	return r.Err
}
