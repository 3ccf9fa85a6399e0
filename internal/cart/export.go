package cart

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Cart"

// Export writes the items and their totals to an xlsx workbook.
func Export(items []Item, totals Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Product", "Options", "Amount", "Unit price", "Price", "Added at"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	for row, item := range items {
		data := []interface{}{
			item.Name,
			DescribeParams(item.Params),
			item.Amount,
			item.PriceSingle.InexactFloat64(),
			item.Price.InexactFloat64(),
			item.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheet, cell, value)
		}
	}

	footer := len(items) + 3
	summary := []struct {
		label string
		value float64
	}{
		{"Subtotal", totals.Subtotal.InexactFloat64()},
		{"Delivery", totals.DeliveryFee.InexactFloat64()},
		{"Total", totals.Total.InexactFloat64()},
	}
	for i, line := range summary {
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", footer+i), line.label)
		f.SetCellValue(exportSheet, fmt.Sprintf("E%d", footer+i), line.value)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	f.SetCellStyle(exportSheet, "A1", "F1", style)
	f.SetCellStyle(exportSheet, fmt.Sprintf("D%d", footer), fmt.Sprintf("D%d", footer+len(summary)-1), style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
