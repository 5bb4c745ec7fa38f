// Package opener shows files and folders in the desktop's default viewer.
package opener

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// Runner starts a command. exec is used outside tests.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Opener hands paths to the OS viewer.
type Opener struct {
	goos string
	run  Runner
}

func New() *Opener { return &Opener{goos: runtime.GOOS, run: execRunner} }

// Command returns the program and arguments that open path on goos.
func Command(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		// start is a cmd builtin; the empty string is the window title.
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Open opens an existing file or folder.
func (o *Opener) Open(path string) error {
	if path == "" {
		return fmt.Errorf("open: empty path")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	name, args := Command(o.goos, path)
	if err := o.run(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s with %s: %w", path, name, err)
	}
	return nil
}
