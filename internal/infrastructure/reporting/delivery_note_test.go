package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"medtrack/internal/domain/reports"
)

func TestRenderDeliveryNote(t *testing.T) {
	note := &reports.DeliveryNote{
		Number:           "TRX-2026-00042",
		Reference:        "PRD-GLV",
		Date:             time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC),
		LocationName:     "Central Clinic",
		LocationAddress:  "Building 12, Road 3, Manama",
		ContactPerson:    "S. Ahmed",
		ProductReference: "PRD-GLV",
		ProductName:      "Nitrile gloves",
		Quantity:         500,
		Comment:          "Monthly allocation",
	}

	var buf bytes.Buffer
	require.NoError(t, NewDeliveryNoteRenderer().Render(note, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		val, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		return val
	}

	assert.Equal(t, "DELIVERY NOTE", get("A1"))
	assert.Equal(t, "Delivery Note: TRX-2026-00042", get("C2"))
	assert.Equal(t, "Ref: PRD-GLV", get("C3"))
	assert.Equal(t, "Date: 14/05/2026", get("E2"))
	assert.Equal(t, "Central Clinic", get("B5"))
	assert.Equal(t, "Nitrile gloves", get("C10"))
	assert.Equal(t, "500", get("D10"))
	assert.Equal(t, "Monthly allocation", get("F10"))
}

func TestRenderDeliveryNoteMinimalFields(t *testing.T) {
	note := &reports.DeliveryNote{
		Number:           "TRX-2026-00001",
		Reference:        "PRD-X",
		Date:             time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		LocationName:     "North Centre",
		ProductReference: "PRD-X",
		ProductName:      "Syringes",
		Quantity:         10,
	}

	var buf bytes.Buffer
	require.NoError(t, NewDeliveryNoteRenderer().Render(note, &buf))
	assert.NotZero(t, buf.Len())
}
