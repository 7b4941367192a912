package definition

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/cartograph/internal/ctxlog"
	"github.com/vk/cartograph/internal/options"
	"github.com/vk/cartograph/internal/schema"
)

// LoadFile parses one definition file and resolves its extension blocks.
// All configuration errors (HCL diagnostics, malformed option structures,
// unknown extension types) surface here, before anything is executed.
func LoadFile(ctx context.Context, path string, regs *Registries) (*Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing definition %s: %w", path, diags)
	}
	return load(ctx, path, file, regs)
}

// Load parses a definition from source bytes. The path is used only for
// diagnostics and the fallback label.
func Load(ctx context.Context, path string, src []byte, regs *Registries) (*Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing definition %s: %w", path, diags)
	}
	return load(ctx, path, file, regs)
}

func load(ctx context.Context, path string, file *hcl.File, regs *Registries) (*Definition, error) {
	logger := ctxlog.FromContext(ctx)

	var raw schema.DefinitionFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding definition %s: %w", path, diags)
	}

	def := &Definition{
		Path:           path,
		Name:           raw.Name,
		World:          raw.World,
		Dest:           raw.Dest,
		rawSpreadsheet: raw.Spreadsheet,
		rawRemote:      raw.Remote,
		rawWebhook:     raw.Webhook,
	}

	if exprPresent(raw.DefaultOptions) {
		defaults, err := options.FromExpression(raw.DefaultOptions)
		if err != nil {
			return nil, fmt.Errorf("definition %s: default_options: %w", def.Label(), err)
		}
		def.DefaultOptions = defaults
	}
	if exprPresent(raw.Tasks) {
		tasks, err := options.ListFromExpression(raw.Tasks)
		if err != nil {
			return nil, fmt.Errorf("definition %s: %w", def.Label(), err)
		}
		def.Tasks = tasks
	}

	if err := def.Resolve(ctx, regs); err != nil {
		return nil, err
	}

	logger.Debug("Definition loaded.",
		"definition", def.Label(),
		"tasks", len(def.Tasks),
		"spreadsheet", def.spreadsheet != nil,
		"remote", def.remote != nil,
		"webhook", def.webhook != nil,
	)
	return def, nil
}

// exprPresent reports whether an optional expression attribute was actually
// written in the file. gohcl fills absent optional hcl.Expression fields with
// a static null expression rather than nil, so a nil check alone is not
// enough: an expression that cleanly evaluates to null without any variables
// in scope is treated as absent.
func exprPresent(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return true
	}
	return !val.IsNull()
}
