package report

import (
	"io"

	"github.com/nconklindev/guestlist/internal/sheet"
	"github.com/nconklindev/guestlist/internal/types"
)

// ConvertWorkbook reads a guest list workbook from r and writes the combined
// dietary table to w as an .xlsx workbook. Nothing is written to w when the
// load or any stage fails.
func (b *Builder) ConvertWorkbook(r io.Reader, w io.Writer) (*types.Result, error) {
	data, err := sheet.ReadFrom(r)
	if err != nil {
		return nil, err
	}

	res, err := b.Run(data, nil)
	if err != nil {
		return nil, err
	}

	if err := sheet.WriteEntriesTo(w, res.Dietary); err != nil {
		return nil, err
	}
	return res, nil
}
