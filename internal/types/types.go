package types

// CellKind describes what a spreadsheet cell held when it was loaded.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellBool
	CellError
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	case CellError:
		return "error"
	}
	return "unknown"
}

// Cell is a single loaded value. A cell is null when its kind is CellEmpty.
type Cell struct {
	Value string
	Kind  CellKind
}

// Text returns a non-null text cell, or a null cell for "".
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Value: s, Kind: CellText}
}

func (c Cell) IsNull() bool {
	return c.Kind == CellEmpty
}

type FileData struct {
	Headers   []string
	Rows      [][]Cell
	HeaderRow int
}

// Result is the outcome of one report run.
type Result struct {
	InputFile     string
	OutputFile    string
	GuestBearers  int
	DietaryGuests int
	Guests        []Guest
	Dietary       []DietaryEntry
}
