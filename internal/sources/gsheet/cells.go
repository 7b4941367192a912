package gsheet

import "github.com/vk/cartograph/internal/marker"

// Minimal projection of the Sheets v4 grid-data response. Only the fields
// the marker pipeline reads are decoded.

type spreadsheetResponse struct {
	Sheets []sheetData `json:"sheets"`
}

type sheetData struct {
	Data []gridData `json:"data"`
}

type gridData struct {
	RowData []rowData `json:"rowData"`
}

type rowData struct {
	Values []cellData `json:"values"`
}

type cellData struct {
	FormattedValue    string          `json:"formattedValue"`
	EffectiveValue    *effectiveValue `json:"effectiveValue"`
	UserEnteredFormat *cellFormat     `json:"userEnteredFormat"`
}

type effectiveValue struct {
	NumberValue *float64 `json:"numberValue"`
	BoolValue   *bool    `json:"boolValue"`
}

type cellFormat struct {
	TextFormat *textFormat `json:"textFormat"`
}

type textFormat struct {
	ForegroundColor *marker.RGB `json:"foregroundColor"`
}

// nameColumn extracts one display name per row. Blank cells get a
// placeholder so the row still lines up with its coordinates.
func nameColumn(grid gridData) []string {
	names := make([]string, 0, len(grid.RowData))
	for _, row := range grid.RowData {
		name := "???"
		if len(row.Values) > 0 && row.Values[0].FormattedValue != "" {
			name = row.Values[0].FormattedValue
		}
		names = append(names, name)
	}
	return names
}

// positionColumn extracts one coordinate triple per row. X and Z are
// mandatory; Y defaults to 0. Rows missing either mandatory axis become
// nil and are later skipped by synthesis.
func positionColumn(grid gridData) []*[3]float64 {
	positions := make([]*[3]float64, 0, len(grid.RowData))
	for _, row := range grid.RowData {
		positions = append(positions, parsePosition(row.Values))
	}
	return positions
}

func parsePosition(values []cellData) *[3]float64 {
	if len(values) < 3 {
		return nil
	}
	x := numberValue(values[0])
	z := numberValue(values[2])
	if x == nil || z == nil {
		return nil
	}
	y := 0.0
	if v := numberValue(values[1]); v != nil {
		y = *v
	}
	return &[3]float64{*x, y, *z}
}

func numberValue(c cellData) *float64 {
	if c.EffectiveValue == nil {
		return nil
	}
	return c.EffectiveValue.NumberValue
}

// checkColumn extracts the visibility/color override cells. Rows without
// values stay nil so synthesis treats them as hidden.
func checkColumn(grid gridData) []*marker.CheckCell {
	checks := make([]*marker.CheckCell, 0, len(grid.RowData))
	for _, row := range grid.RowData {
		if len(row.Values) == 0 {
			checks = append(checks, nil)
			continue
		}
		cell := row.Values[0]
		check := &marker.CheckCell{Text: cell.FormattedValue}
		if cell.EffectiveValue != nil {
			check.Bool = cell.EffectiveValue.BoolValue
		}
		if cell.UserEnteredFormat != nil && cell.UserEnteredFormat.TextFormat != nil {
			check.Color = cell.UserEnteredFormat.TextFormat.ForegroundColor
		}
		checks = append(checks, check)
	}
	return checks
}
