package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nconklindev/guestlist/internal/types"

	"github.com/xuri/excelize/v2"
)

// OutputSheetName is the sheet the dietary table is written to.
const OutputSheetName = "Dietary"

// SupportedOutput reports whether WriteEntries can write to path.
func SupportedOutput(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// WriteEntries writes entries to a .xlsx or .csv file with a header row and
// no index column. A partially written file is removed.
func WriteEntries(outputFile string, entries []types.DietaryEntry) error {
	if !SupportedOutput(outputFile) {
		return fmt.Errorf("unsupported output type: %q", filepath.Ext(outputFile))
	}

	outFile, err := os.Create(outputFile)
	if err != nil {
		return err
	}

	if err := EncodeEntries(outFile, filepath.Ext(outputFile), entries); err != nil {
		outFile.Close()
		os.Remove(outputFile)
		return err
	}
	return outFile.Close()
}

// EncodeEntries writes entries to w in the format named by ext (".xlsx" or
// ".csv").
func EncodeEntries(w io.Writer, ext string, entries []types.DietaryEntry) error {
	switch strings.ToLower(ext) {
	case ".csv":
		return writeCSV(w, entries)
	case ".xlsx":
		return WriteEntriesTo(w, entries)
	default:
		return fmt.Errorf("unsupported output type: %q", ext)
	}
}

func writeCSV(w io.Writer, entries []types.DietaryEntry) error {
	records := make([][]string, 0, len(entries)+1)
	records = append(records, types.EntryColumns)
	for _, e := range entries {
		records = append(records, e.Strings())
	}

	return csv.NewWriter(w).WriteAll(records)
}

// WriteEntriesTo writes entries as an .xlsx workbook to w.
func WriteEntriesTo(w io.Writer, entries []types.DietaryEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OutputSheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(types.EntryColumns))
	for i, col := range types.EntryColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(OutputSheetName, "A1", &header); err != nil {
		return err
	}

	for i, e := range entries {
		for colIdx, c := range e.Cells() {
			if c.IsNull() {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(OutputSheetName, cellName, cellValue(c)); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// cellValue keeps numeric cells numeric in the written workbook.
func cellValue(c types.Cell) interface{} {
	switch c.Kind {
	case types.CellNumber:
		if n, err := strconv.ParseFloat(c.Value, 64); err == nil {
			return n
		}
	case types.CellBool:
		if b, err := strconv.ParseBool(c.Value); err == nil {
			return b
		}
	}
	return c.Value
}
