package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phpdave11/gofpdf"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/repositories"
	"hotelbooking/internal/utils"
)

// DocsService renders booking invoices as PDF.
type DocsService struct {
	DB     *sqlx.DB
	Log    *slog.Logger
	Loader func(ctx context.Context, bookingID int64) (models.BookingDetail, error)
	Now    func() time.Time
}

func (s DocsService) load(ctx context.Context, id int64) (models.BookingDetail, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	return repositories.BookingRepo{DB: s.DB}.GetDetail(ctx, id)
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GenerateInvoice returns the PDF bytes and a download filename.
func (s DocsService) GenerateInvoice(ctx context.Context, bookingID int64) ([]byte, string, error) {
	d, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	if s.Log != nil {
		s.Log.Info("generate invoice", slog.Int64("booking_id", bookingID))
	}
	return buildInvoicePDF(d, s.now())
}

func buildInvoicePDF(d models.BookingDetail, issued time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d-%s", d.ID, d.CheckIn.Time().Format("20060102"))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice no : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+issued.Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Status     : "+string(d.Status))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Name  : %s", utils.Fallback(d.UserName, "-")))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Email : %s", utils.Fallback(d.Email, "-")))
	pdf.Ln(10)

	nights := d.Stay().Nights()
	desc := fmt.Sprintf("%s at %s (%s), %s to %s",
		utils.Fallback(d.RoomType, "Room"),
		utils.Fallback(d.HotelName, "-"),
		utils.FallbackPtr(d.HotelLocation, "-"),
		d.CheckIn, d.CheckOut,
	)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Details:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 6, fmt.Sprintf("Nightly rate: %s x %d night(s)", utils.FormatDollars(d.RoomPrice), nights))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatDollars(d.TotalPrice))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "The total is the amount agreed at booking time.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%d_%s.pdf", d.ID, utils.SafeFilenamePart(d.UserName))
	return buf.Bytes(), filename, nil
}
