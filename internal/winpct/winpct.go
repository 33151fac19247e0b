// Package winpct loads and queries the empirical win-percentage table
// used by the simulator to convert a final spread estimate into a
// win-probability equity component, per spec.md section 5. Ported
// from original_source's win_pct.c; the CSV format it parses has no
// GoSkrafl counterpart. Load parses CSV text handed to it by the
// caller; the package embeds no data file.
package winpct

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is an immutable, row-major array of win percentages indexed
// by [maxSpread-spread][tilesUnseen], clamped at both edges, grounded
// in original_source's WinPct struct and win_pct_get.
type Table struct {
	name            string
	values          [][]float64
	minSpread       int
	maxSpread       int
	maxTilesUnseen  int
}

// Load parses a CSV document shaped like original_source's win-pct
// data files: a header row (skipped; the column count comes from the
// first data row), then one
// row per spread value in descending order, first column the spread,
// remaining columns win percentage by tiles-unseen.
func Load(name string, csv string) (*Table, error) {
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("winpct: %s has no data rows", name)
	}
	dataLines := lines[1:]
	t := &Table{name: name, values: make([][]float64, len(dataLines))}
	numCols := -1
	for i, line := range dataLines {
		fields := strings.Split(line, ",")
		if numCols == -1 {
			numCols = len(fields)
		} else if len(fields) != numCols {
			return nil, fmt.Errorf("winpct: %s line %d has %d columns, want %d", name, i, len(fields), numCols)
		}
		spread, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("winpct: %s line %d bad spread: %w", name, i, err)
		}
		if i == 0 {
			t.maxSpread = spread
		}
		if i == len(dataLines)-1 {
			t.minSpread = spread
		}
		row := make([]float64, numCols-1)
		for j := 1; j < numCols; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("winpct: %s line %d col %d: %w", name, i, j, err)
			}
			row[j-1] = v
		}
		t.values[i] = row
	}
	t.maxTilesUnseen = numCols - 2
	return t, nil
}

// Name returns the table's identifying name.
func (t *Table) Name() string { return t.name }

// Get returns the win percentage for a spread-plus-leftover estimate
// and a count of tiles unseen by the simulated player, clamping both
// arguments to the table's known range, grounded in
// original_source's win_pct_get.
func (t *Table) Get(spreadPlusLeftover int, tilesUnseen int) float64 {
	if spreadPlusLeftover > t.maxSpread {
		spreadPlusLeftover = t.maxSpread
	}
	if spreadPlusLeftover < t.minSpread {
		spreadPlusLeftover = t.minSpread
	}
	if tilesUnseen > t.maxTilesUnseen {
		tilesUnseen = t.maxTilesUnseen
	}
	if tilesUnseen < 0 {
		tilesUnseen = 0
	}
	row := t.maxSpread - spreadPlusLeftover
	return t.values[row][tilesUnseen]
}
