package report

import (
	"io"
	"strconv"

	"github.com/nconklindev/guestlist/internal/types"

	"github.com/nao1215/markdown"
)

// WriteMarkdown renders the counts and the combined dietary table.
func WriteMarkdown(w io.Writer, res *types.Result) error {
	md := markdown.NewMarkdown(w)

	md.H1("Dietary Restrictions")
	if res.InputFile != "" {
		md.PlainText("Source: `" + res.InputFile + "`")
		md.PlainText("")
	}
	if res.OutputFile != "" {
		md.PlainText("Spreadsheet: `" + res.OutputFile + "`")
		md.PlainText("")
	}

	md.Table(markdown.TableSet{
		Header: []string{"Count", "Value"},
		Rows: [][]string{
			{"Attendees with a guest", strconv.Itoa(res.GuestBearers)},
			{"Guests with a dietary restriction", strconv.Itoa(res.DietaryGuests)},
			{"Dietary entries", strconv.Itoa(len(res.Dietary))},
		},
	})
	md.PlainText("")

	md.H2("Entries")
	if len(res.Dietary) == 0 {
		md.PlainText("No dietary restrictions recorded.")
		return md.Build()
	}

	rows := make([][]string, 0, len(res.Dietary))
	for _, e := range res.Dietary {
		rows = append(rows, e.Strings())
	}
	md.Table(markdown.TableSet{
		Header: types.EntryColumns,
		Rows:   rows,
	})

	return md.Build()
}
