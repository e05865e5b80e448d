package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/yourorg/rentledger/internal/domain"
)

// ExcelHeader is the property workbook header row
var ExcelHeader = []string{
	"Property ID",
	"Owner",
	"Address",
	"Monthly Rent",
	"Monthly Mortgage",
	"Status",
	"Monthly Profit",
	"Bedrooms",
	"Living Rooms",
	"Kitchens",
	"Bathrooms",
	"House Type",
	"Description",
}

var excelColumnWidths = []float64{12, 20, 36, 14, 16, 10, 14, 10, 12, 10, 10, 14, 40}

const excelSheetName = "Properties"

// WriteExcel renders the property listing as an xlsx workbook with a bold
// header row and one row per property.
func WriteExcel(properties []*domain.Property, filePath string) error {
	f, err := buildWorkbook(properties)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to write Excel report: %w", err)
	}
	return nil
}

func buildWorkbook(properties []*domain.Property) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(excelSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, title := range ExcelHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(excelSheetName, cell, title); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(excelSheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for col, width := range excelColumnWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to resolve column name: %w", err)
		}
		if err := f.SetColWidth(excelSheetName, name, name, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, p := range properties {
		row := i + 2
		values := []interface{}{
			p.ID,
			p.OwnerName,
			p.Address,
			p.MonthlyRent,
			p.MonthlyMortgage,
			p.Status,
			p.MonthlyProfit(),
			p.Bedrooms,
			p.LivingRooms,
			p.Kitchens,
			p.Bathrooms,
			p.HouseType,
			p.Description,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(excelSheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	return f, nil
}
