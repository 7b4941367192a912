// Package discord implements the "discord" webhook notifier: a "map
// updated" embed posted to a Discord-compatible webhook URL.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/vk/cartograph/internal/ctxlog"
	"github.com/vk/cartograph/internal/definition"
)

// timestampFile is a renderer side artifact whose modification time marks
// when the map was last generated.
const timestampFile = "chunks.sqlite"

// Config is the body of a `webhook { type = "discord" }` block.
type Config struct {
	// URL is the webhook endpoint.
	URL string `hcl:"url"`
	// Link is the public map URL the embed points at.
	Link string `hcl:"link"`
}

// Webhook posts update notifications for its owning definition.
type Webhook struct {
	definition.Extension
	cfg    Config
	client *http.Client
}

// Module registers the variant.
type Module struct{}

// Register registers the discord webhook variant.
func (Module) Register(r *definition.Registries) {
	r.Webhooks.Register("discord", New)
}

// New constructs a Webhook from its block body.
func New(_ context.Context, body hcl.Body) (definition.Notifier, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding discord block: %w", diags)
	}
	return &Webhook{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type embed struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp,omitempty"`
}

type message struct {
	Embeds []embed `json:"embeds"`
}

// buildMessage assembles the embed. The timestamp is taken from the
// renderer's chunk database when it exists next to the output.
func (w *Webhook) buildMessage(def *definition.Definition) message {
	e := embed{Title: "Map updated!", URL: w.cfg.Link}
	if info, err := os.Stat(filepath.Join(def.Dest, timestampFile)); err == nil {
		e.Timestamp = info.ModTime().UTC().Format(time.RFC3339)
	}
	return message{Embeds: []embed{e}}
}

// Push delivers the notification. Any non-2xx response is an error.
func (w *Webhook) Push(ctx context.Context, def *definition.Definition) error {
	def = w.Owner(def)
	logger := ctxlog.FromContext(ctx)

	payload, err := json.Marshal(w.buildMessage(def))
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("webhook returned %s: %s", resp.Status, body)
	}

	logger.Debug("Webhook delivered.", "status", resp.Status)
	return nil
}
