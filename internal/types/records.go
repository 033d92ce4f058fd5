package types

// Column names used by the guest list spreadsheet.
const (
	ColTableNumber  = "tablenumber"
	ColFirst        = "first"
	ColLast         = "last"
	ColDescrip      = "descrip"
	ColHost         = "host"
	ColHaveGuest    = "haveguest"
	ColGuestFirst   = "guestfirst"
	ColGuestLast    = "guestlast"
	ColGuestDietary = "guestdietary"
	ColDietary      = "dietary"
)

// EntryColumns is the column order of every derived table.
var EntryColumns = []string{ColTableNumber, ColDescrip, ColHost, ColFirst, ColLast, ColDietary}

// Attendee is one row of the source guest list.
type Attendee struct {
	TableNumber  Cell
	First        Cell
	Last         Cell
	Descrip      Cell
	Host         Cell
	HaveGuest    Cell
	GuestFirst   Cell
	GuestLast    Cell
	GuestDietary Cell
	Dietary      Cell
}

// Guest is the person an attendee brought, relabeled into the attendee columns.
type Guest struct {
	TableNumber Cell
	Descrip     Cell
	Host        Cell
	First       Cell
	Last        Cell
	Dietary     Cell
}

// NewGuest builds the guest record for a. Descrip is taken from the
// attendee's own name before First and Last are replaced with the guest's.
// Descrip is null if either attendee name is null.
func NewGuest(a Attendee) Guest {
	g := Guest{
		TableNumber: a.TableNumber,
		Host:        a.Host,
	}
	if !a.First.IsNull() && !a.Last.IsNull() {
		g.Descrip = Text("Guest of " + a.First.Value + " " + a.Last.Value)
	}
	g.First = a.GuestFirst
	g.Last = a.GuestLast
	g.Dietary = a.GuestDietary
	return g
}

func (g Guest) DietaryEntry() DietaryEntry {
	return DietaryEntry(g)
}

// DietaryEntry is a row of the combined dietary restriction table.
type DietaryEntry struct {
	TableNumber Cell
	Descrip     Cell
	Host        Cell
	First       Cell
	Last        Cell
	Dietary     Cell
}

func NewDietaryEntry(a Attendee) DietaryEntry {
	return DietaryEntry{
		TableNumber: a.TableNumber,
		Descrip:     a.Descrip,
		Host:        a.Host,
		First:       a.First,
		Last:        a.Last,
		Dietary:     a.Dietary,
	}
}

// Cells returns the entry in EntryColumns order.
func (e DietaryEntry) Cells() []Cell {
	return []Cell{e.TableNumber, e.Descrip, e.Host, e.First, e.Last, e.Dietary}
}

// Strings returns the entry values in EntryColumns order, "" for null cells.
func (e DietaryEntry) Strings() []string {
	cells := e.Cells()
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.Value
	}
	return out
}
