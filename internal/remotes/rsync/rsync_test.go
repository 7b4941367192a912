package rsync

import (
	"context"
	"fmt"
	"testing"

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

func newRemote(t *testing.T, src string) *Remote {
	t.Helper()
	sink, err := New(context.Background(), blockBody(t, src))
	require.NoError(t, err)
	return sink.(*Remote)
}

func TestCommand_WholeMap(t *testing.T) {
	r := newRemote(t, `
ip   = "maps.example.org"
path = "volume/map"
`)

	argv := r.command("/srv/out/map/", "")
	assert.Equal(t, []string{
		"rsync",
		"--rsync-path", "mkdir -p volume/map && rsync",
		"-rltz",
		"--delete",
		"/srv/out/map/",
		"maps.example.org::volume/map/",
	}, argv)
}

func TestCommand_QuotesAwkwardPaths(t *testing.T) {
	r := newRemote(t, `
ip   = "maps.example.org"
path = "my maps/map"
`)

	argv := r.command("/srv/out/map/playersData.js", "playersData.js")
	assert.Equal(t, "mkdir -p 'my maps/map' && rsync", argv[2])
	assert.Equal(t, "maps.example.org::my maps/map/playersData.js", argv[len(argv)-1])
}

func TestNew_RejectsUnsafePaths(t *testing.T) {
	testCases := []struct {
		name string
		path string
	}{
		{name: "colon", path: "volume:map"},
		{name: "double quote", path: `volume"map`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := fmt.Sprintf("ip = %q\npath = %q\n", "maps.example.org", tc.path)
			_, err := New(context.Background(), blockBody(t, src))
			require.Error(t, err)
		})
	}
}

func TestNew_RequiresIPAndPath(t *testing.T) {
	_, err := New(context.Background(), blockBody(t, `ip = "maps.example.org"`))
	require.Error(t, err)
}

func TestModule_Register(t *testing.T) {
	regs := definition.NewRegistries()
	Module{}.Register(regs)
	assert.Contains(t, regs.Remotes.Tags(), "rsync")
}
