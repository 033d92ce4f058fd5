package report

import (
	"fmt"
	"strings"

	"github.com/nconklindev/guestlist/internal/types"
)

// Table is a read-only view over loaded guest list rows.
type Table struct {
	index map[string]int
	rows  [][]types.Cell
}

// NewTable indexes the header of data. The first occurrence of a duplicated
// header wins.
func NewTable(data *types.FileData) *Table {
	index := make(map[string]int, len(data.Headers))
	for i, h := range data.Headers {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	return &Table{
		index: index,
		rows:  data.Rows,
	}
}

func (t *Table) Len() int {
	return len(t.rows)
}

// require checks that every column in cols exists.
func (t *Table) require(stage string, cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &StageError{
			Stage: stage,
			Err:   fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", ")),
		}
	}
	return nil
}

func (t *Table) cell(row []types.Cell, col string) types.Cell {
	idx, ok := t.index[col]
	if !ok || idx >= len(row) {
		return types.Cell{}
	}
	return row[idx]
}

// filter returns a table with the same header holding the rows that keep
// accepts. The row slices are shared, not copied.
func (t *Table) filter(keep func(row []types.Cell) bool) *Table {
	out := &Table{index: t.index}
	for _, row := range t.rows {
		if keep(row) {
			out.rows = append(out.rows, row)
		}
	}
	return out
}

func (t *Table) attendee(row []types.Cell) types.Attendee {
	return types.Attendee{
		TableNumber:  t.cell(row, types.ColTableNumber),
		First:        t.cell(row, types.ColFirst),
		Last:         t.cell(row, types.ColLast),
		Descrip:      t.cell(row, types.ColDescrip),
		Host:         t.cell(row, types.ColHost),
		HaveGuest:    t.cell(row, types.ColHaveGuest),
		GuestFirst:   t.cell(row, types.ColGuestFirst),
		GuestLast:    t.cell(row, types.ColGuestLast),
		GuestDietary: t.cell(row, types.ColGuestDietary),
		Dietary:      t.cell(row, types.ColDietary),
	}
}
