package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(x, y, z float64) *[3]float64 {
	return &[3]float64{x, y, z}
}

func boolPtr(b bool) *bool { return &b }

func TestSynthesize_SkipsRowsWithoutPosition(t *testing.T) {
	markers := Synthesize([]DimensionRows{{
		Names:     []string{"First", "Second", "Third"},
		Positions: []*[3]float64{pos(1, 2, 3), nil, pos(7, 8, 9)},
	}})

	require.Len(t, markers, 2)
	assert.Equal(t, "First", markers[0].Name)
	assert.Equal(t, "Third", markers[1].Name)
}

func TestSynthesize_BlockCentering(t *testing.T) {
	testCases := []struct {
		name     string
		in       *[3]float64
		expected [3]float64
	}{
		{
			name:     "integral horizontal axes move to the cell center",
			in:       pos(10, 5, 20),
			expected: [3]float64{10.5, 5, 20.5},
		},
		{
			name:     "sub-cell precision passes through",
			in:       pos(10.25, 5, -3.75),
			expected: [3]float64{10.25, 5, -3.75},
		},
		{
			name:     "vertical axis is never offset",
			in:       pos(0.5, 64, 0.5),
			expected: [3]float64{0.5, 64, 0.5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			markers := Synthesize([]DimensionRows{{
				Names:     []string{"Spot"},
				Positions: []*[3]float64{tc.in},
			}})
			require.Len(t, markers, 1)
			assert.Equal(t, tc.expected, markers[0].Position)
		})
	}
}

func TestSynthesize_NoCheckRange(t *testing.T) {
	markers := Synthesize([]DimensionRows{{
		Names:     []string{"A", "B"},
		Positions: []*[3]float64{pos(1, 0, 1), pos(2, 0, 2)},
	}})

	require.Len(t, markers, 2)
	for _, m := range markers {
		assert.True(t, m.Visible)
		assert.Contains(t, Palette[:], m.Color, "color falls back to the derived palette entry")
		assert.NotEmpty(t, m.UUID)
	}
}

func TestSynthesize_CheckCells(t *testing.T) {
	markers := Synthesize([]DimensionRows{{
		Names: []string{"BoolTrue", "BoolFalse", "TextTruthy", "TextBlank", "AbsentRow", "Colored"},
		Positions: []*[3]float64{
			pos(1, 0, 1), pos(2, 0, 2), pos(3, 0, 3), pos(4, 0, 4), pos(5, 0, 5), pos(6, 0, 6),
		},
		Checks: []*CheckCell{
			{Bool: boolPtr(true)},
			{Bool: boolPtr(false)},
			{Text: "yes"},
			{Text: "   "},
			nil,
			{Bool: boolPtr(true), Color: &RGB{Red: 1}},
		},
	}})

	require.Len(t, markers, 6)
	assert.True(t, markers[0].Visible)
	assert.False(t, markers[1].Visible)
	assert.True(t, markers[2].Visible, "non-empty trimmed text counts as visible")
	assert.False(t, markers[3].Visible, "blank text counts as hidden")
	assert.False(t, markers[4].Visible, "absent override row counts as hidden")
	assert.True(t, markers[5].Visible)

	assert.Equal(t, "#ff0000", markers[5].Color, "formatting color overrides the derived one")
	assert.Contains(t, Palette[:], markers[4].Color, "absent cell still derives a color")
}

func TestSynthesize_ZipShortest(t *testing.T) {
	markers := Synthesize([]DimensionRows{{
		Names:     []string{"A", "B", "C", "D"},
		Positions: []*[3]float64{pos(1, 0, 1), pos(2, 0, 2), pos(3, 0, 3)},
		Checks:    []*CheckCell{{Bool: boolPtr(true)}, {Bool: boolPtr(true)}},
	}})

	assert.Len(t, markers, 2, "rows beyond the shortest aligned set are ignored")
}

func TestSynthesize_DimensionOrderAndNoDedup(t *testing.T) {
	markers := Synthesize([]DimensionRows{
		{
			ID:        0,
			Names:     []string{"Portal"},
			Positions: []*[3]float64{pos(100, 64, -100)},
		},
		{
			ID:        1,
			Names:     []string{"Portal"},
			Positions: []*[3]float64{pos(12, 64, -12)},
		},
	})

	require.Len(t, markers, 2, "markers sharing a name across dimensions are both kept")
	assert.Equal(t, 0, markers[0].DimensionID)
	assert.Equal(t, 1, markers[1].DimensionID)
	assert.Equal(t, markers[0].UUID, markers[1].UUID, "identity depends only on the name")
}

func TestSynthesize_Empty(t *testing.T) {
	assert.Empty(t, Synthesize(nil))
	assert.Empty(t, Synthesize([]DimensionRows{{}}))
}
