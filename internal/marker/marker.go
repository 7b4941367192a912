// Package marker builds the point-of-interest player markers that the
// rendered map's web frontend consumes.
//
// A marker's identity and display color are pure functions of its display
// name, so regenerating a map from the same spreadsheet always produces
// the same marker set without any persisted state.
package marker

import (
	"crypto/md5"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Palette is the fixed set of marker colors a name can hash to. Near-black,
// near-white and gray entries are deliberately excluded so markers stay
// legible against the map tiles.
var Palette = [...]string{
	"#0000AA",
	"#00AA00",
	"#00AAAA",
	"#AA0000",
	"#AA00AA",
	"#FFAA00",
	"#5555FF",
	"#55FF55",
	"#55FFFF",
	"#FF5555",
	"#FF55FF",
	"#FFFF55",
}

// PlayerMarker is one point of interest on the rendered map.
type PlayerMarker struct {
	UUID        string     `json:"uuid"`
	Name        string     `json:"name"`
	DimensionID int        `json:"dimensionId"`
	Position    [3]float64 `json:"position"`
	Color       string     `json:"color"`
	Visible     bool       `json:"visible"`
}

// hashSum digests the marker's name, falling back to its existing UUID
// when the name is empty.
func (m *PlayerMarker) hashSum() [md5.Size]byte {
	key := m.Name
	if key == "" {
		key = m.UUID
	}
	return md5.Sum([]byte(key))
}

// DeriveUUID sets the marker's identity from its name. The digest is
// already UUID-sized, so the identity is simply the digest in UUID form.
func (m *PlayerMarker) DeriveUUID() {
	sum := m.hashSum()
	id, err := uuid.FromBytes(sum[:])
	if err != nil {
		// md5.Size == 16, so FromBytes cannot fail.
		panic(err)
	}
	m.UUID = id.String()
}

// ApplyColor sets the marker's color. An explicit color wins; otherwise
// the color is picked from Palette by the name digest.
func (m *PlayerMarker) ApplyColor(explicit string) {
	if explicit != "" {
		m.Color = explicit
		return
	}
	sum := m.hashSum()
	idx := new(big.Int).SetBytes(sum[:])
	idx.Mod(idx, big.NewInt(int64(len(Palette))))
	m.Color = Palette[idx.Int64()]
}

// RGB is a normalized-channel color as spreadsheet formatting reports it.
// Absent channels decode to 0.
type RGB struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

// Hex converts the color to a #rrggbb string, truncating each channel.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.Red*255), int(c.Green*255), int(c.Blue*255))
}
