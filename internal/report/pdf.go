package report

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/yourorg/rentledger/internal/domain"
)

// pdfColumns defines the property table header and relative widths
var pdfColumns = []struct {
	title string
	width float64
}{
	{"Property ID", 24},
	{"Owner", 28},
	{"Address", 48},
	{"Rent", 22},
	{"Mortgage", 22},
	{"Status", 22},
	{"Profit", 22},
}

// WritePDF renders the property listing as a PDF report: title, generation
// timestamp, tabular listing and a totals block.
func WritePDF(properties []*domain.Property, filePath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so the pound sign renders correctly
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Property Management Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	generated := "Generated on: " + time.Now().Format("2006-01-02 15:04:05")
	pdf.CellFormat(0, 8, generated, "", 1, "R", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	var totalRent, totalMortgage, totalProfit float64

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range properties {
		cells := []string{
			p.ID,
			p.OwnerName,
			p.Address,
			fmt.Sprintf("£%.2f", p.MonthlyRent),
			fmt.Sprintf("£%.2f", p.MonthlyMortgage),
			p.Status,
			fmt.Sprintf("£%.2f", p.MonthlyProfit()),
		}
		for i, cell := range cells {
			pdf.CellFormat(pdfColumns[i].width, 7, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)

		totalRent += p.MonthlyRent
		totalMortgage += p.MonthlyMortgage
		totalProfit += p.MonthlyProfit()
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total Monthly Rent: £%.2f", totalRent)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total Monthly Mortgage: £%.2f", totalMortgage)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Total Monthly Profit: £%.2f", totalProfit)), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return fmt.Errorf("failed to write PDF report: %w", err)
	}
	return nil
}
