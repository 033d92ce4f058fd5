package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nconklindev/guestlist/internal/types"
)

// GuestMarker is the haveguest value that marks an attendee bringing a guest.
// The match is exact: "x" or " X" do not count.
const GuestMarker = "X"

var guestColumns = []string{
	types.ColTableNumber, types.ColFirst, types.ColLast, types.ColDescrip,
	types.ColHost, types.ColGuestFirst, types.ColGuestLast, types.ColGuestDietary,
}

const stageCount = 5

// Builder derives the guest and dietary tables from a loaded guest list.
// The two informational counts are written to out, one per line.
type Builder struct {
	out    io.Writer
	logger *slog.Logger
}

func NewBuilder(out io.Writer, logger *slog.Logger) *Builder {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{out: out, logger: logger}
}

// FilterGuestBearers keeps the rows whose haveguest is exactly GuestMarker.
func (b *Builder) FilterGuestBearers(t *Table) (*Table, error) {
	if err := t.require(StageGuestBearers, types.ColHaveGuest); err != nil {
		return nil, err
	}

	bearers := t.filter(func(row []types.Cell) bool {
		return t.cell(row, types.ColHaveGuest).Value == GuestMarker
	})

	b.logger.Info("attendees with a guest", "count", bearers.Len(), "rows", t.Len())
	fmt.Fprintln(b.out, bearers.Len())
	return bearers, nil
}

// DeriveGuestRecords turns each row into the record of the guest it brought.
func (b *Builder) DeriveGuestRecords(t *Table) ([]types.Guest, error) {
	if err := t.require(StageDeriveGuests, guestColumns...); err != nil {
		return nil, err
	}

	guests := make([]types.Guest, 0, t.Len())
	for i, row := range t.rows {
		a := t.attendee(row)
		if err := requireText(i, types.ColFirst, a.First); err != nil {
			return nil, err
		}
		if err := requireText(i, types.ColLast, a.Last); err != nil {
			return nil, err
		}
		guests = append(guests, types.NewGuest(a))
	}

	b.logger.Debug("derived guest records", "count", len(guests))
	return guests, nil
}

func requireText(row int, col string, c types.Cell) error {
	if c.IsNull() || c.Kind == types.CellText {
		return nil
	}
	return &StageError{
		Stage: StageDeriveGuests,
		Err:   fmt.Errorf("%w: row %d column %q holds %s %q", ErrTypeMismatch, row+1, col, c.Kind, c.Value),
	}
}

// FilterDietary projects every attendee to a dietary entry and keeps the
// ones with a dietary restriction.
func (b *Builder) FilterDietary(t *Table) ([]types.DietaryEntry, error) {
	if err := t.require(StageDietary, types.EntryColumns...); err != nil {
		return nil, err
	}

	var entries []types.DietaryEntry
	for _, row := range t.rows {
		e := types.NewDietaryEntry(t.attendee(row))
		if !e.Dietary.IsNull() {
			entries = append(entries, e)
		}
	}

	b.logger.Debug("attendees with a dietary restriction", "count", len(entries))
	return entries, nil
}

// FilterDietaryGuests keeps the guests with a dietary restriction.
func (b *Builder) FilterDietaryGuests(guests []types.Guest) []types.DietaryEntry {
	var entries []types.DietaryEntry
	for _, g := range guests {
		if !g.Dietary.IsNull() {
			entries = append(entries, g.DietaryEntry())
		}
	}

	b.logger.Info("guests with a dietary restriction", "count", len(entries))
	fmt.Fprintln(b.out, len(entries))
	return entries
}

// CombineDietary returns base followed by guests. Nothing is deduplicated.
func CombineDietary(base, guests []types.DietaryEntry) []types.DietaryEntry {
	combined := make([]types.DietaryEntry, 0, len(base)+len(guests))
	combined = append(combined, base...)
	return append(combined, guests...)
}

// Run chains every stage over data. Progress is reported after each stage
// without blocking; a nil channel disables it.
func (b *Builder) Run(data *types.FileData, progressChan chan<- float64) (*types.Result, error) {
	reportProgress := func(stage int) {
		if progressChan != nil {
			select {
			case progressChan <- float64(stage) / float64(stageCount):
			default:
			}
		}
	}

	t := NewTable(data)

	bearers, err := b.FilterGuestBearers(t)
	if err != nil {
		return nil, err
	}
	reportProgress(1)

	guests, err := b.DeriveGuestRecords(bearers)
	if err != nil {
		return nil, err
	}
	reportProgress(2)

	dietary, err := b.FilterDietary(t)
	if err != nil {
		return nil, err
	}
	reportProgress(3)

	dietaryGuests := b.FilterDietaryGuests(guests)
	reportProgress(4)

	combined := CombineDietary(dietary, dietaryGuests)
	reportProgress(5)

	b.logger.Info("dietary report built", "entries", len(combined))

	return &types.Result{
		GuestBearers:  bearers.Len(),
		DietaryGuests: len(dietaryGuests),
		Guests:        guests,
		Dietary:       combined,
	}, nil
}
