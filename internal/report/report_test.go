package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yourorg/rentledger/internal/domain"
)

func sampleProperties() []*domain.Property {
	return []*domain.Property{
		{
			ID:              "P001",
			OwnerName:       "Jane Owner",
			Address:         "12 High Street",
			MonthlyRent:     950,
			MonthlyMortgage: 600,
			Status:          domain.StatusRented,
			Bedrooms:        3,
			LivingRooms:     1,
			Kitchens:        1,
			HouseType:       "Terraced",
			Bathrooms:       1,
		},
		{
			ID:              "P002",
			OwnerName:       "Jane Owner",
			Address:         "7 Mill Lane",
			MonthlyRent:     700,
			MonthlyMortgage: 450,
			Status:          domain.StatusVacant,
			Bedrooms:        2,
			HouseType:       "Apartment",
		},
	}
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.xlsx")
	if err := WriteExcel(sampleProperties(), path); err != nil {
		t.Fatalf("write excel failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(excelSheetName)
	if err != nil {
		t.Fatalf("read rows failed: %v", err)
	}

	// header plus one row per property
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Property ID" || len(rows[0]) != len(ExcelHeader) {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "P001" || rows[2][0] != "P002" {
		t.Fatalf("unexpected data rows: %v %v", rows[1], rows[2])
	}
}

func TestWriteExcel_VacantProfitIsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.xlsx")
	if err := WriteExcel(sampleProperties(), path); err != nil {
		t.Fatalf("write excel failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer f.Close()

	// Monthly Profit is the seventh column; P002 is vacant
	profit, err := f.GetCellValue(excelSheetName, "G3")
	if err != nil {
		t.Fatalf("read cell failed: %v", err)
	}
	if profit != "0" {
		t.Fatalf("expected zero profit for vacant property, got %q", profit)
	}
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.pdf")
	if err := WritePDF(sampleProperties(), path); err != nil {
		t.Fatalf("write pdf failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Fatalf("expected a PDF file, got leading bytes %q", data[:8])
	}
	if len(data) < 1024 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestWritePDF_EmptyPortfolio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := WritePDF(nil, path); err != nil {
		t.Fatalf("write pdf for empty portfolio failed: %v", err)
	}
}
