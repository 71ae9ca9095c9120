// Package export renders annotated documents as review spreadsheets.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dtnitsch/statblock-parser/models"
)

const sheet = "Lines"

var headers = []string{
	"Page",
	"Section",
	"Line",
	"Text",
	"Line Tags",
	"Section Tags",
	"Left",
	"Top",
}

// ReviewXLSX returns a workbook (as bytes) with one row per line of doc.
// Section tags are repeated on every line of the section so rows can be
// filtered on their own.
func ReviewXLSX(doc *models.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// Rename the default sheet rather than leaving an empty one behind
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, page := range doc.Pages {
		for si, section := range page.Sections {
			sectionTags := strings.Join(section.Attributes, ", ")
			for li, line := range section.Lines {
				write := func(col int, v any) {
					cell, _ := excelize.CoordinatesToCellName(col, row)
					_ = f.SetCellValue(sheet, cell, v)
				}

				write(1, page.Number)
				write(2, si+1)
				write(3, li+1)
				write(4, line.Text)
				write(5, strings.Join(line.Attributes, ", "))
				write(6, sectionTags)
				if line.Bound != nil {
					write(7, line.Bound.Left)
					write(8, line.Bound.Top)
				}

				row++
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	_ = f.SetColWidth(sheet, "A", "C", 8)
	_ = f.SetColWidth(sheet, "D", "D", 60) // text
	_ = f.SetColWidth(sheet, "E", "F", 36) // tags
	_ = f.SetColWidth(sheet, "G", "H", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
