package definition

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/cartograph/internal/marker"
	"github.com/vk/cartograph/internal/options"
	"github.com/vk/cartograph/internal/registry"
	"github.com/vk/cartograph/internal/schema"
)

// MarkerSource fetches and synthesizes the player marker list for a
// definition. Implementations are registered under the "spreadsheet"
// capability.
type MarkerSource interface {
	Binder
	// PlayerMarkers fetches the source data and synthesizes markers. The
	// def argument overrides the bound owner when non-nil.
	PlayerMarkers(ctx context.Context, def *Definition) ([]marker.PlayerMarker, error)
}

// RemoteSink distributes rendered output to a remote destination.
// Implementations are registered under the "remote" capability.
type RemoteSink interface {
	Binder
	// Upload transfers the whole rendered map directory.
	Upload(ctx context.Context, def *Definition) error
	// UploadMarkers transfers only the player marker file.
	UploadMarkers(ctx context.Context, def *Definition) error
}

// Notifier delivers a "map updated" notification. Implementations are
// registered under the "webhook" capability.
type Notifier interface {
	Binder
	Push(ctx context.Context, def *Definition) error
}

// Registries groups the per-capability extension tables. A fresh instance
// is populated by calling Register on each Module during startup.
type Registries struct {
	Spreadsheets *registry.Table[MarkerSource]
	Remotes      *registry.Table[RemoteSink]
	Webhooks     *registry.Table[Notifier]
}

// NewRegistries creates empty capability tables.
func NewRegistries() *Registries {
	return &Registries{
		Spreadsheets: registry.NewTable[MarkerSource]("spreadsheet"),
		Remotes:      registry.NewTable[RemoteSink]("remote"),
		Webhooks:     registry.NewTable[Notifier]("webhook"),
	}
}

// Module is implemented by every extension variant package so the
// application can register variants explicitly at startup.
type Module interface {
	Register(r *Registries)
}

// Definition is one fully parsed definition file.
type Definition struct {
	// Path is the definition file this entity was parsed from.
	Path string
	// Name is the optional display label.
	Name string
	// World is the renderer's input path.
	World string
	// Dest is the renderer's output root.
	Dest string
	// DefaultOptions is prepended to every task's options. May be nil.
	DefaultOptions *options.Structure
	// Tasks holds one option structure per renderer invocation.
	Tasks []*options.Structure

	rawSpreadsheet *schema.ExtensionBlock
	rawRemote      *schema.ExtensionBlock
	rawWebhook     *schema.ExtensionBlock

	resolved    bool
	spreadsheet MarkerSource
	remote      RemoteSink
	webhook     Notifier
}

// Label returns the display name, falling back to the file name.
func (d *Definition) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return filepath.Base(d.Path)
}

// Commands assembles the renderer argument vector for each task:
// the world/output pair, then the flattened default options, then the
// flattened task options. One vector per task, in task order.
func (d *Definition) Commands() [][]string {
	base := []string{"--world", d.World, "--output", d.Dest}
	base = append(base, d.DefaultOptions.Flatten()...)

	commands := make([][]string, 0, len(d.Tasks))
	for _, task := range d.Tasks {
		command := make([]string, 0, len(base))
		command = append(command, base...)
		command = append(command, task.Flatten()...)
		commands = append(commands, command)
	}
	return commands
}

// Resolve looks up each present extension block in its capability table
// and binds the constructed variant back to this definition. Resolution
// is idempotent: a second call returns without re-running any factory.
func (d *Definition) Resolve(ctx context.Context, regs *Registries) error {
	if d.resolved {
		return nil
	}

	if d.rawSpreadsheet != nil {
		src, err := regs.Spreadsheets.Resolve(ctx, d.rawSpreadsheet.Type, d.rawSpreadsheet.Body)
		if err != nil {
			return fmt.Errorf("definition %s: resolving spreadsheet block: %w", d.Label(), err)
		}
		src.BindOwner(d)
		d.spreadsheet = src
	}
	if d.rawRemote != nil {
		sink, err := regs.Remotes.Resolve(ctx, d.rawRemote.Type, d.rawRemote.Body)
		if err != nil {
			return fmt.Errorf("definition %s: resolving remote block: %w", d.Label(), err)
		}
		sink.BindOwner(d)
		d.remote = sink
	}
	if d.rawWebhook != nil {
		hook, err := regs.Webhooks.Resolve(ctx, d.rawWebhook.Type, d.rawWebhook.Body)
		if err != nil {
			return fmt.Errorf("definition %s: resolving webhook block: %w", d.Label(), err)
		}
		hook.BindOwner(d)
		d.webhook = hook
	}

	d.resolved = true
	return nil
}

// Spreadsheet returns the resolved marker source, or nil when the
// definition has no spreadsheet block.
func (d *Definition) Spreadsheet() MarkerSource { return d.spreadsheet }

// Remote returns the resolved remote sink, or nil when absent.
func (d *Definition) Remote() RemoteSink { return d.remote }

// Webhook returns the resolved notifier, or nil when absent.
func (d *Definition) Webhook() Notifier { return d.webhook }
