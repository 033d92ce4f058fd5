package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/guestlist/internal/types"

	"github.com/xuri/excelize/v2"
)

// HeaderSearchLimit is how many leading rows are scanned for the header row.
const HeaderSearchLimit = 20

// ErrLoad wraps every failure to read a guest list file.
var ErrLoad = errors.New("load guest list")

// ReadFrom reads an .xlsx workbook held in r, such as an uploaded buffer.
func ReadFrom(r io.Reader) (*types.FileData, error) {
	data, err := readXLSX(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return data, nil
}

// ReadFileData reads the header and all data rows of a .xlsx or .csv file
func ReadFileData(filePath string) (*types.FileData, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	var (
		data *types.FileData
		err  error
	)
	switch ext {
	case ".csv":
		data, err = readCSVData(filePath)
	case ".xlsx":
		data, err = readXLSXData(filePath)
	default:
		err = fmt.Errorf("unsupported file type: %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, filePath, err)
	}
	return data, nil
}

func readCSVData(filePath string) (*types.FileData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	headers := records[0]
	rows := make([][]types.Cell, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make([]types.Cell, len(headers))
		for i := 0; i < len(headers) && i < len(record); i++ {
			row[i] = types.Text(record[i])
		}
		rows = append(rows, row)
	}

	return &types.FileData{
		Headers: headers,
		Rows:    rows,
	}, nil
}

func readXLSXData(filePath string) (*types.FileData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readXLSX(file)
}

func readXLSX(r io.Reader) (*types.FileData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	headerRowIdx := findHeaderRow(rows)
	if headerRowIdx == -1 {
		return nil, fmt.Errorf("could not find header row")
	}

	headers := rows[headerRowIdx]
	data := make([][]types.Cell, 0, len(rows)-headerRowIdx-1)
	for rowIdx := headerRowIdx + 1; rowIdx < len(rows); rowIdx++ {
		row := make([]types.Cell, len(headers))
		for colIdx := 0; colIdx < len(headers) && colIdx < len(rows[rowIdx]); colIdx++ {
			value := rows[rowIdx][colIdx]
			if value == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			row[colIdx] = types.Cell{Value: value, Kind: kindOf(cellType)}
		}
		data = append(data, row)
	}

	return &types.FileData{
		Headers:   headers,
		Rows:      data,
		HeaderRow: headerRowIdx,
	}, nil
}

// kindOf maps an excelize cell type onto a CellKind. Cells without an
// explicit type attribute are numeric in OOXML.
func kindOf(t excelize.CellType) types.CellKind {
	switch t {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return types.CellText
	case excelize.CellTypeBool:
		return types.CellBool
	case excelize.CellTypeError:
		return types.CellError
	default:
		return types.CellNumber
	}
}

// findHeaderRow returns the first row with at least two non-empty cells,
// one of them text. Title rows above the header are skipped; later rows
// are never considered once a header is found.
func findHeaderRow(rows [][]string) int {
	searchLimit := len(rows)
	if searchLimit > HeaderSearchLimit {
		searchLimit = HeaderSearchLimit
	}

	for i := 0; i < searchLimit; i++ {
		nonEmptyCount := 0
		hasText := false

		for _, cell := range rows[i] {
			trimmed := strings.TrimSpace(cell)
			if trimmed != "" {
				nonEmptyCount++
				if containsLetters(trimmed) {
					hasText = true
				}
			}
		}

		if nonEmptyCount >= 2 && hasText {
			return i
		}
	}

	return -1
}

// containsLetters checks if a string contains any alphabetic characters
func containsLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}
