package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/cartograph/internal/ctxlog"
	"github.com/vk/cartograph/internal/definition"
	"github.com/vk/cartograph/internal/marker"
	"github.com/vk/cartograph/internal/renderer"
)

// Run loads every definition and processes them one at a time. All
// configuration errors surface during loading, before any external
// process is started; a failing step aborts the remaining steps of its
// definition and the run.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	defs := make([]*definition.Definition, 0, len(a.cfg.Definitions))
	for _, path := range a.cfg.Definitions {
		def, err := definition.LoadFile(ctx, path, a.regs)
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}
	a.logger.Debug("Definitions loaded.", "count", len(defs))

	var rend *renderer.Renderer
	if a.needsRenderer(defs) {
		r, err := renderer.Locate(a.cfg.Renderer)
		if err != nil {
			return err
		}
		rend = r
	}

	for _, def := range defs {
		if err := a.runDefinition(ctx, def, rend); err != nil {
			return fmt.Errorf("definition %s: %w", def.Label(), err)
		}
	}
	return nil
}

// needsRenderer reports whether any definition will actually invoke the
// renderer, so a missing binary only matters when it would be used.
func (a *App) needsRenderer(defs []*definition.Definition) bool {
	if a.cfg.SkipMap || a.cfg.DryRun {
		return false
	}
	for _, def := range defs {
		if len(def.Tasks) > 0 {
			return true
		}
	}
	return false
}

// runDefinition executes the four pipeline steps for one definition,
// strictly in order: render, markers, upload, notify.
func (a *App) runDefinition(ctx context.Context, def *definition.Definition, rend *renderer.Renderer) error {
	logger := a.logger.With("definition", def.Label())
	ctx = ctxlog.WithLogger(ctx, logger)

	fmt.Fprintln(a.outW, headerStyle.Render("Current definition: "+def.Label()))

	if err := a.renderStep(ctx, def, rend); err != nil {
		return err
	}
	if err := a.markerStep(ctx, def); err != nil {
		return err
	}
	if err := a.remoteStep(ctx, def); err != nil {
		return err
	}
	return a.webhookStep(ctx, def)
}

func (a *App) renderStep(ctx context.Context, def *definition.Definition, rend *renderer.Renderer) error {
	logger := ctxlog.FromContext(ctx)

	switch {
	case a.cfg.SkipMap:
		logger.Debug("Skipping map generation.")
		return nil
	case len(def.Tasks) == 0:
		logger.Warn("No tasks listed; skipping map generation.")
		return nil
	}

	commands := def.Commands()
	for i, args := range commands {
		logger.Info("Renderer command.", "task", i+1, "total", len(commands), "args", strings.Join(args, " "))
		if a.cfg.DryRun {
			continue
		}
		done := a.step(fmt.Sprintf("Rendering task %d/%d...", i+1, len(commands)))
		err := rend.Render(ctx, a.outW, args)
		done(err)
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) markerStep(ctx context.Context, def *definition.Definition) error {
	logger := ctxlog.FromContext(ctx)

	source := def.Spreadsheet()
	switch {
	case a.cfg.SkipMarkers:
		logger.Debug("Skipping marker generation.")
		return nil
	case source == nil:
		logger.Debug("No spreadsheet block; skipping markers.")
		return nil
	case a.cfg.DryRun:
		logger.Info("Dry run: would synthesize and write player markers.")
		return nil
	}

	done := a.step("Setting player markers...")
	err := a.writeMarkers(ctx, def, source)
	done(err)
	return err
}

func (a *App) writeMarkers(ctx context.Context, def *definition.Definition, source definition.MarkerSource) error {
	markers, err := source.PlayerMarkers(ctx, nil)
	if err != nil {
		return fmt.Errorf("synthesizing markers: %w", err)
	}
	if err := marker.WriteFile(def.Dest, markers); err != nil {
		return fmt.Errorf("writing markers: %w", err)
	}
	return nil
}

func (a *App) remoteStep(ctx context.Context, def *definition.Definition) error {
	logger := ctxlog.FromContext(ctx)

	remote := def.Remote()
	switch {
	case a.cfg.SkipRemote:
		logger.Debug("Skipping remote upload.")
		return nil
	case remote == nil:
		logger.Debug("No remote block; skipping upload.")
		return nil
	case a.cfg.DryRun:
		logger.Info("Dry run: would upload to remote.", "sheet_only", a.cfg.SheetOnly)
		return nil
	}

	done := a.step("Uploading to remote...")
	var err error
	if a.cfg.SheetOnly {
		err = remote.UploadMarkers(ctx, nil)
	} else {
		err = remote.Upload(ctx, nil)
	}
	done(err)
	return err
}

func (a *App) webhookStep(ctx context.Context, def *definition.Definition) error {
	logger := ctxlog.FromContext(ctx)

	hook := def.Webhook()
	switch {
	case a.cfg.SkipWebhook:
		logger.Debug("Skipping webhook push.")
		return nil
	case hook == nil:
		logger.Debug("No webhook block; skipping push.")
		return nil
	case a.cfg.DryRun:
		logger.Info("Dry run: would push to webhook.")
		return nil
	}

	done := a.step("Pushing to webhook...")
	err := hook.Push(ctx, nil)
	done(err)
	return err
}
