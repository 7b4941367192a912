// Package renderer wraps the external map-rendering binary as an opaque
// subprocess consuming an argument vector.
package renderer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vk/cartograph/internal/ctxlog"
)

// defaultBinary is the renderer looked up when no explicit path is given.
const defaultBinary = "papyruscs"

// Renderer invokes the external rendering binary.
type Renderer struct {
	bin string
}

// New wraps an already-located binary path.
func New(bin string) *Renderer {
	return &Renderer{bin: bin}
}

// Locate finds the renderer binary. An explicit path must exist; otherwise
// a binary next to this executable wins over a $PATH lookup.
func Locate(explicit string) (*Renderer, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("renderer binary: %w", err)
		}
		return New(explicit), nil
	}
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), defaultBinary)
		if _, err := os.Stat(candidate); err == nil {
			return New(candidate), nil
		}
	}
	path, err := exec.LookPath(defaultBinary)
	if err != nil {
		return nil, fmt.Errorf("locating renderer binary: %w", err)
	}
	return New(path), nil
}

// Bin returns the wrapped binary path.
func (r *Renderer) Bin() string { return r.bin }

// Render runs the binary with the given argument vector and waits for it.
// The subprocess inherits out for both stdout and stderr so renderer
// progress stays visible. A non-zero exit status is an error.
func (r *Renderer) Render(ctx context.Context, out io.Writer, args []string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running renderer.", "bin", r.bin, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("renderer %s: %w", filepath.Base(r.bin), err)
	}
	return nil
}
