package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Filename is the fixed attachment name for shopping list downloads.
const Filename = "shopping_list.pdf"

// Page layout. Points on US Letter; a new page starts when the cursor runs
// past the bottom margin.
const (
	fontHeader      = 16.0
	fontLine        = 10.0
	marginTop       = 40.0
	marginBottom    = 40.0
	marginLeft      = 30.0
	afterHeader     = 30.0
	lineHeight      = 20.0
	headerText      = "Your shopping list:"
	defaultFontName = "Helvetica"
)

// Line is one rendered shopping list entry.
type Line struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// Render paginates the shopping list onto fixed-size pages and returns the
// document bytes. An empty list yields a header-only page.
func Render(lines []Line) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	_, pageHeight := doc.GetPageSize()

	y := marginTop
	doc.SetFont(defaultFontName, "", fontHeader)
	doc.Text(marginLeft, y, headerText)
	y += afterHeader

	doc.SetFont(defaultFontName, "", fontLine)
	for _, line := range lines {
		doc.Text(marginLeft, y, fmt.Sprintf("%s: %d %s", line.Name, line.Amount, line.MeasurementUnit))
		y += lineHeight
		if y > pageHeight-marginBottom {
			doc.AddPage()
			doc.SetFont(defaultFontName, "", fontLine)
			y = marginTop
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render shopping list pdf: %w", err)
	}
	return buf.Bytes(), nil
}
