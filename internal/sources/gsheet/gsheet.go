// Package gsheet implements the "gsheet" spreadsheet source: player
// marker data fetched from a Google Sheets spreadsheet through the
// Sheets v4 REST API.
package gsheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/vk/cartograph/internal/ctxlog"
	"github.com/vk/cartograph/internal/definition"
	"github.com/vk/cartograph/internal/marker"
)

const defaultEndpoint = "https://sheets.googleapis.com"

// apiKeyEnv is consulted when the block carries no key of its own.
const apiKeyEnv = "GOOGLEAPIKEY"

// Config is the body of a `spreadsheet { type = "gsheet" }` block.
type Config struct {
	// ID is the spreadsheet id from its URL.
	ID string `hcl:"id"`
	// Key is the API key; falls back to $GOOGLEAPIKEY.
	Key string `hcl:"key,optional"`
	// Endpoint overrides the Sheets API base URL.
	Endpoint string `hcl:"endpoint,optional"`
	// Dimensions maps each in-world dimension to its sheet ranges.
	Dimensions []DimensionConfig `hcl:"dimension,block"`
}

// DimensionConfig names the three row-aligned A1 ranges of one dimension.
type DimensionConfig struct {
	Label string `hcl:"label,label"`
	// ID is the dimension id stamped on the markers.
	ID int `hcl:"id,optional"`
	// Name is the range of marker display names.
	Name string `hcl:"name"`
	// Position is the range of X/Y/Z coordinate cells.
	Position string `hcl:"position"`
	// Check is the optional visibility/color range.
	Check string `hcl:"check,optional"`
}

// Source fetches marker data for its owning definition.
type Source struct {
	definition.Extension
	cfg      Config
	key      string
	endpoint string
	client   *http.Client
}

// Module registers the variant. Wired into the application's core module
// list at startup.
type Module struct{}

// Register registers the gsheet spreadsheet variant.
func (Module) Register(r *definition.Registries) {
	r.Spreadsheets.Register("gsheet", New)
}

// New constructs a Source from its block body. A missing API key is a
// resolution-time error, so it surfaces before any rendering starts.
func New(_ context.Context, body hcl.Body) (definition.MarkerSource, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("decoding gsheet block: %w", diags)
	}

	key := cfg.Key
	if key == "" {
		key = os.Getenv(apiKeyEnv)
	}
	if key == "" {
		return nil, fmt.Errorf("no Google Sheets key found; set key in the spreadsheet block or the %s environment variable", apiKeyEnv)
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Source{
		cfg:      cfg,
		key:      key,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// PlayerMarkers fetches each dimension's ranges and synthesizes the
// marker list.
func (s *Source) PlayerMarkers(ctx context.Context, _ *definition.Definition) ([]marker.PlayerMarker, error) {
	logger := ctxlog.FromContext(ctx)

	var dims []marker.DimensionRows
	for _, dim := range s.cfg.Dimensions {
		ranges := []string{dim.Name, dim.Position}
		if dim.Check != "" {
			ranges = append(ranges, dim.Check)
		}

		grids, err := s.fetchRanges(ctx, ranges)
		if err != nil {
			return nil, fmt.Errorf("dimension %s: %w", dim.Label, err)
		}
		if len(grids) < 2 {
			return nil, fmt.Errorf("dimension %s: expected %d ranges in response, got %d", dim.Label, len(ranges), len(grids))
		}

		rows := marker.DimensionRows{
			ID:        dim.ID,
			Names:     nameColumn(grids[0]),
			Positions: positionColumn(grids[1]),
		}
		if dim.Check != "" {
			if len(grids) < 3 {
				return nil, fmt.Errorf("dimension %s: check range missing from response", dim.Label)
			}
			rows.Checks = checkColumn(grids[2])
		}
		dims = append(dims, rows)
	}

	markers := marker.Synthesize(dims)
	logger.Info("Synthesized player markers.", "count", len(markers))
	return markers, nil
}

// fetchRanges retrieves the given A1 ranges with grid data in one call.
// All ranges must live on a single sheet.
func (s *Source) fetchRanges(ctx context.Context, ranges []string) ([]gridData, error) {
	query := url.Values{}
	query.Set("includeGridData", "true")
	query.Set("key", s.key)
	for _, r := range ranges {
		query.Add("ranges", r)
	}
	reqURL := fmt.Sprintf("%s/v4/spreadsheets/%s?%s", s.endpoint, url.PathEscape(s.cfg.ID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating sheets request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spreadsheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("sheets API returned %s: %s", resp.Status, body)
	}

	var parsed spreadsheetResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding sheets response: %w", err)
	}
	if len(parsed.Sheets) != 1 {
		return nil, errors.New("all ranges must be on a single sheet")
	}
	return parsed.Sheets[0].Data, nil
}
