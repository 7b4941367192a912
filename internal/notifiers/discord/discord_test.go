package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/cartograph/internal/definition"
)

func blockBody(t *testing.T, src string) hcl.Body {
	t.Helper()
	file, diags := hclparse.NewParser().ParseHCL([]byte(src), "block.hcl")
	require.False(t, diags.HasErrors(), diags.Error())
	return file.Body
}

func newWebhook(t *testing.T, url string) *Webhook {
	t.Helper()
	src := fmt.Sprintf("url = %q\nlink = %q\n", url, "https://maps.example.org/")
	hook, err := New(context.Background(), blockBody(t, src))
	require.NoError(t, err)
	return hook.(*Webhook)
}

func TestPush(t *testing.T) {
	var got message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	hook := newWebhook(t, server.URL)
	def := &definition.Definition{Dest: t.TempDir()}
	hook.BindOwner(def)

	require.NoError(t, hook.Push(context.Background(), nil))

	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "Map updated!", got.Embeds[0].Title)
	assert.Equal(t, "https://maps.example.org/", got.Embeds[0].URL)
	assert.Empty(t, got.Embeds[0].Timestamp, "no chunk database, no timestamp")
}

func TestPush_TimestampFromChunkDatabase(t *testing.T) {
	var got message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	dest := t.TempDir()
	dbPath := filepath.Join(dest, timestampFile)
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0o644))
	modTime := time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
	require.NoError(t, os.Chtimes(dbPath, modTime, modTime))

	hook := newWebhook(t, server.URL)
	require.NoError(t, hook.Push(context.Background(), &definition.Definition{Dest: dest}))

	require.Len(t, got.Embeds, 1)
	assert.Equal(t, "2023-04-05T06:07:08Z", got.Embeds[0].Timestamp)
}

func TestPush_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	hook := newWebhook(t, server.URL)
	hook.BindOwner(&definition.Definition{Dest: t.TempDir()})

	err := hook.Push(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestModule_Register(t *testing.T) {
	regs := definition.NewRegistries()
	Module{}.Register(regs)
	assert.Contains(t, regs.Webhooks.Tags(), "discord")
}
