package sheet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nconklindev/guestlist/internal/types"

	"github.com/xuri/excelize/v2"
)

var guestHeaders = []interface{}{
	"tablenumber", "first", "last", "descrip", "host",
	"haveguest", "guestfirst", "guestlast", "guestdietary", "dietary",
}

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
}

func TestReadFileData_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guests.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"Gala 2022"},
		guestHeaders,
		{5, "Jane", "Doe", "Board", "Smith", "X", "Tom", "Lee", "vegan"},
		{6, "Ann", "Bell", nil, "Smith", nil, nil, nil, nil, "nut allergy"},
	})

	data, err := ReadFileData(path)
	if err != nil {
		t.Fatalf("ReadFileData() error = %v", err)
	}

	if data.HeaderRow != 1 {
		t.Errorf("HeaderRow = %d; want 1", data.HeaderRow)
	}
	if len(data.Headers) != len(guestHeaders) {
		t.Fatalf("got %d headers; want %d", len(data.Headers), len(guestHeaders))
	}
	if len(data.Rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(data.Rows))
	}

	tests := []struct {
		name string
		row  int
		col  int
		want types.Cell
	}{
		{"Numeric table number", 0, 0, types.Cell{Value: "5", Kind: types.CellNumber}},
		{"Text name", 0, 1, types.Cell{Value: "Jane", Kind: types.CellText}},
		{"Trailing cell missing", 0, 9, types.Cell{}},
		{"Blank cell", 1, 3, types.Cell{}},
		{"Dietary", 1, 9, types.Cell{Value: "nut allergy", Kind: types.CellText}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := data.Rows[tt.row][tt.col]
			if got != tt.want {
				t.Errorf("Rows[%d][%d] = %+v; want %+v", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestReadFileData_XLSXExtraDataColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guests.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		guestHeaders,
		{5, "Jane", "Doe", "Board", "Smith", "X", "Tom", "Lee", "vegan", "gluten", "seat by door"},
	})

	data, err := ReadFileData(path)
	if err != nil {
		t.Fatalf("ReadFileData() error = %v", err)
	}

	if data.HeaderRow != 0 {
		t.Errorf("HeaderRow = %d; want 0", data.HeaderRow)
	}
	if len(data.Headers) != len(guestHeaders) || data.Headers[0] != "tablenumber" {
		t.Errorf("Headers = %v", data.Headers)
	}
	if len(data.Rows) != 1 {
		t.Fatalf("got %d rows; want 1", len(data.Rows))
	}
	if got := data.Rows[0][9]; got != (types.Cell{Value: "gluten", Kind: types.CellText}) {
		t.Errorf("dietary = %+v; want gluten", got)
	}
}

func TestReadFrom_WriteEntriesTo(t *testing.T) {
	var out bytes.Buffer
	if err := WriteEntriesTo(&out, sampleEntries()); err != nil {
		t.Fatalf("WriteEntriesTo() error = %v", err)
	}

	data, err := ReadFrom(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatalf("ReadFrom() error = %v", err)
	}

	if len(data.Headers) != len(types.EntryColumns) {
		t.Fatalf("Headers = %v; want %v", data.Headers, types.EntryColumns)
	}
	for i, h := range types.EntryColumns {
		if data.Headers[i] != h {
			t.Errorf("Headers[%d] = %q; want %q", i, data.Headers[i], h)
		}
	}
	if len(data.Rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(data.Rows))
	}
	if got := data.Rows[1][3]; got != types.Text("Tom") {
		t.Errorf("Rows[1] first = %+v; want Tom", got)
	}
}

func TestReadFrom_NotAWorkbook(t *testing.T) {
	_, err := ReadFrom(bytes.NewReader([]byte("tablenumber,first\n")))
	if !errors.Is(err, ErrLoad) {
		t.Errorf("ReadFrom() error = %v; want ErrLoad", err)
	}
}

func TestReadFileData_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guests.csv")
	content := "tablenumber,first,last,haveguest,dietary\n5,Jane,Doe,X,\n6,Ann,Bell\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadFileData(path)
	if err != nil {
		t.Fatalf("ReadFileData() error = %v", err)
	}

	if len(data.Rows) != 2 {
		t.Fatalf("got %d rows; want 2", len(data.Rows))
	}
	if got := data.Rows[0][3]; got != types.Text("X") {
		t.Errorf("haveguest = %+v; want X", got)
	}
	if !data.Rows[0][4].IsNull() {
		t.Errorf("empty dietary should be null, got %+v", data.Rows[0][4])
	}
	if len(data.Rows[1]) != len(data.Headers) || !data.Rows[1][4].IsNull() {
		t.Errorf("short row not padded: %+v", data.Rows[1])
	}
}

func TestReadFileData_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	bogus := filepath.Join(dir, "bogus.xlsx")
	if err := os.WriteFile(bogus, []byte("not a workbook"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"Missing file", filepath.Join(dir, "missing.xlsx")},
		{"Unsupported type", filepath.Join(dir, "guests.txt")},
		{"Empty CSV", empty},
		{"Not a workbook", bogus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFileData(tt.path)
			if !errors.Is(err, ErrLoad) {
				t.Errorf("ReadFileData(%s) error = %v; want ErrLoad", tt.name, err)
			}
		})
	}
}

func sampleEntries() []types.DietaryEntry {
	return []types.DietaryEntry{
		{
			TableNumber: types.Cell{Value: "5", Kind: types.CellNumber},
			Descrip:     types.Text("Staff"),
			Host:        types.Text("Smith"),
			First:       types.Text("Ann"),
			Last:        types.Text("Bell"),
			Dietary:     types.Text("nut allergy"),
		},
		{
			TableNumber: types.Cell{Value: "7", Kind: types.CellNumber},
			Host:        types.Text("Jones"),
			First:       types.Text("Tom"),
			Last:        types.Text("Lee"),
			Dietary:     types.Text("vegan"),
		},
	}
}

func TestWriteEntries_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dietary.xlsx")
	if err := WriteEntries(path, sampleEntries()); err != nil {
		t.Fatalf("WriteEntries() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(OutputSheetName)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		types.EntryColumns,
		{"5", "Staff", "Smith", "Ann", "Bell", "nut allergy"},
		{"7", "", "Jones", "Tom", "Lee", "vegan"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows; want %d", len(rows), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d = %q; want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}

	// Round trip keeps the table number numeric.
	data, err := ReadFileData(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := data.Rows[0][0].Kind; got != types.CellNumber {
		t.Errorf("tablenumber kind = %s; want number", got)
	}
	if !data.Rows[1][1].IsNull() {
		t.Errorf("null descrip written as %+v", data.Rows[1][1])
	}
}

func TestWriteEntries_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dietary.csv")
	if err := WriteEntries(path, sampleEntries()); err != nil {
		t.Fatalf("WriteEntries() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "tablenumber,descrip,host,first,last,dietary\n" +
		"5,Staff,Smith,Ann,Bell,nut allergy\n" +
		"7,,Jones,Tom,Lee,vegan\n"
	if string(got) != want {
		t.Errorf("csv = %q; want %q", got, want)
	}
}

func TestWriteEntries_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dietary.json")
	if err := WriteEntries(path, sampleEntries()); err == nil {
		t.Error("expected error for unsupported output type")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created for unsupported output")
	}
}

func TestFindHeaderRow(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected int
	}{
		{"First row", [][]string{{"first", "last"}, {"Jane", "Doe"}}, 0},
		{"After title", [][]string{{"Gala"}, {"first", "last", "dietary"}}, 1},
		{"Wider data row", [][]string{{"first", "last"}, {"Jane", "Doe", "seat by door"}}, 0},
		{"Numbers only", [][]string{{"1", "2"}, {"3", "4"}}, -1},
		{"Empty", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findHeaderRow(tt.rows); got != tt.expected {
				t.Errorf("findHeaderRow() = %d; want %d", got, tt.expected)
			}
		})
	}
}
