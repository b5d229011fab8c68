// Package reporting renders printable documents.
package reporting

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"medtrack/internal/domain/reports"
)

const sheetName = "Delivery Note"

// DeliveryNoteRenderer writes delivery notes as .xlsx workbooks
// following the operation's established paper template.
type DeliveryNoteRenderer struct{}

// NewDeliveryNoteRenderer creates a renderer.
func NewDeliveryNoteRenderer() *DeliveryNoteRenderer {
	return &DeliveryNoteRenderer{}
}

// Render writes the delivery note workbook to w.
func (r *DeliveryNoteRenderer) Render(note *reports.DeliveryNote, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	// Column layout from the paper template.
	widths := []struct {
		col   string
		width float64
	}{
		{"A", 5}, {"B", 12}, {"C", 25}, {"D", 15}, {"E", 15}, {"F", 15},
	}
	for _, cw := range widths {
		if err := f.SetColWidth(sheetName, cw.col, cw.col, cw.width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 16, Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("title style: %w", err)
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial", Size: 10, Bold: true},
	})
	if err != nil {
		return fmt.Errorf("label style: %w", err)
	}

	textStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial", Size: 10},
	})
	if err != nil {
		return fmt.Errorf("text style: %w", err)
	}

	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 10, Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Family: "Arial", Size: 10},
		Border: thin,
	})
	if err != nil {
		return fmt.Errorf("cell style: %w", err)
	}

	set := func(cell string, value any, style int) error {
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return err
		}
		return f.SetCellStyle(sheetName, cell, cell, style)
	}

	// Title block.
	if err := f.MergeCell(sheetName, "A1", "F1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	if err := set("A1", "DELIVERY NOTE", titleStyle); err != nil {
		return err
	}

	if err := set("C2", "Delivery Note: "+note.Number, labelStyle); err != nil {
		return err
	}
	if err := set("C3", "Ref: "+note.Reference, labelStyle); err != nil {
		return err
	}
	if err := set("E2", "Date: "+note.Date.Format("02/01/2006"), labelStyle); err != nil {
		return err
	}

	// Recipient block.
	if err := set("A5", "To:", labelStyle); err != nil {
		return err
	}
	if err := set("B5", note.LocationName, textStyle); err != nil {
		return err
	}
	if note.LocationAddress != "" {
		if err := set("B6", note.LocationAddress, textStyle); err != nil {
			return err
		}
	}
	if note.ContactPerson != "" {
		if err := set("A7", "Attn:", labelStyle); err != nil {
			return err
		}
		if err := set("B7", note.ContactPerson, textStyle); err != nil {
			return err
		}
	}

	// Item table.
	headers := map[string]string{
		"A9": "#",
		"B9": "Ref",
		"C9": "Description",
		"D9": "Quantity",
		"E9": "Unit",
		"F9": "Remarks",
	}
	for cell, text := range headers {
		if err := set(cell, text, headerStyle); err != nil {
			return err
		}
	}

	description := note.ProductName
	if note.ProductDescription != "" {
		description = fmt.Sprintf("%s - %s", note.ProductName, note.ProductDescription)
	}
	row := map[string]any{
		"A10": 1,
		"B10": note.ProductReference,
		"C10": description,
		"D10": note.Quantity,
		"E10": "pcs",
		"F10": note.Comment,
	}
	for cell, value := range row {
		if err := set(cell, value, cellStyle); err != nil {
			return err
		}
	}

	// Signature block.
	if err := set("B13", "Delivered by: ______________", textStyle); err != nil {
		return err
	}
	if err := set("E13", "Received by: ______________", textStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
