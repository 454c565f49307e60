package services

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"railbook/internal/domain/models"
)

// TicketService renders a printable e-ticket for a confirmed booking.
type TicketService struct{}

func (TicketService) Generate(b models.Booking, t models.Train) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID : %s", b.ID),
		fmt.Sprintf("Route      : %s -> %s", t.Origin, t.Destination),
		fmt.Sprintf("Train      : #%d", t.ID),
		fmt.Sprintf("Seats      : %d", b.SeatCount),
		fmt.Sprintf("Status     : %s", b.Status),
		fmt.Sprintf("Booked at  : %s", b.CreatedAt.Format("2006-01-02 15:04")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger (one seat). Please present it at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("ETICKET_%s.pdf", b.ID), nil
}
