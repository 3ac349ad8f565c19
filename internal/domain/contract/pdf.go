package contract

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

func writePDF(w io.Writer, s Summary) error {
	c := s.Contract
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Contract #%d", c.ContractID))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Client: %s", s.Client.Description))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Brand: %s", s.Brand.Description))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deal #%d pitched %s", s.Deal.DealID, s.Deal.PitchDate))
	pdf.Ln(7)
	end := c.EndDate
	if end == "" {
		end = "open"
	}
	pdf.Cell(0, 8, fmt.Sprintf("Term: %s to %s", c.StartDate, end))
	pdf.Ln(7)
	approved := "no"
	if c.IsApproved {
		approved = "yes"
	}
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s (approved: %s)", c.Status, approved))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Payment: %s", s.Fee.Payment.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Agency fee (%s%%): %s", fmt.Sprint(c.AgencyPercentage), s.Fee.AgencyFee.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Client net: %s", s.Fee.ClientNet.StringFixed(2)))
	if c.Details != "" {
		pdf.Ln(10)
		pdf.MultiCell(0, 6, c.Details, "", "L", false)
	}
	return pdf.Output(w)
}
