// Package rsync implements the "rsync" remote sink: rendered output is
// transferred to an rsync daemon by running the rsync binary as a
// subprocess.
package rsync

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/kballard/go-shellquote"

	"github.com/vk/cartograph/internal/ctxlog"
	"github.com/vk/cartograph/internal/definition"
	"github.com/vk/cartograph/internal/marker"
)

// Config is the body of a `remote { type = "rsync" }` block.
type Config struct {
	// IP is the rsync daemon host.
	IP string `hcl:"ip"`
	// Path is the module path on the daemon. Colons and double quotes
	// would break the remote command line, so they are rejected.
	Path string `hcl:"path"`
}

// Remote uploads a definition's rendered map over rsync.
type Remote struct {
	definition.Extension
	cfg Config
}

// Module registers the variant.
type Module struct{}

// Register registers the rsync remote variant.
func (Module) Register(r *definition.Registries) {
	r.Remotes.Register("rsync", New)
}

// New constructs a Remote from its block body, validating the remote path.
func New(_ context.Context, body hcl.Body) (definition.RemoteSink, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding rsync block: %w", diags)
	}
	if strings.Contains(cfg.Path, ":") {
		return nil, fmt.Errorf("rsync path %q cannot contain a colon", cfg.Path)
	}
	if strings.Contains(cfg.Path, `"`) {
		return nil, fmt.Errorf("rsync path %q cannot contain a double quote", cfg.Path)
	}
	return &Remote{cfg: cfg}, nil
}

// command builds the rsync argument vector for one transfer. The remote
// directory is created first via --rsync-path, and extraneous files at the
// destination are deleted.
func (r *Remote) command(source, destSuffix string) []string {
	return []string{
		"rsync",
		"--rsync-path", fmt.Sprintf("mkdir -p %s && rsync", shellquote.Join(r.cfg.Path)),
		"-rltz",
		"--delete",
		source,
		fmt.Sprintf("%s::%s/%s", r.cfg.IP, r.cfg.Path, destSuffix),
	}
}

// Upload transfers the contents of the rendered map directory.
func (r *Remote) Upload(ctx context.Context, def *definition.Definition) error {
	def = r.Owner(def)
	abs, err := filepath.Abs(def.Dest)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}
	// Trailing slash: copy the directory's contents, not the directory.
	source := filepath.Join(abs, "map") + "/"
	return r.run(ctx, r.command(source, ""))
}

// UploadMarkers transfers only the player marker file.
func (r *Remote) UploadMarkers(ctx context.Context, def *definition.Definition) error {
	def = r.Owner(def)
	abs, err := filepath.Abs(def.Dest)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}
	source := filepath.Join(abs, "map", marker.FileName)
	return r.run(ctx, r.command(source, marker.FileName))
}

func (r *Remote) run(ctx context.Context, argv []string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running rsync.", "command", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("rsync to %s failed: %w: %s", r.cfg.IP, err, strings.TrimSpace(string(output)))
	}
	return nil
}
