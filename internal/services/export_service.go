package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"

	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/repositories"
)

const bookingsSheet = "Bookings"

// ExportService builds the admin bookings spreadsheet.
type ExportService struct {
	DB     *sqlx.DB
	Lister func(ctx context.Context) ([]models.BookingDetail, error)
	Now    func() time.Time
}

func (s ExportService) list(ctx context.Context) ([]models.BookingDetail, error) {
	if s.Lister != nil {
		return s.Lister(ctx)
	}
	return repositories.BookingRepo{DB: s.DB}.ListAll(ctx)
}

// BookingsXLSX returns every booking, newest first, as an .xlsx workbook.
func (s ExportService) BookingsXLSX(ctx context.Context) ([]byte, string, error) {
	rows, err := s.list(ctx)
	if err != nil {
		return nil, "", err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}

	w := &sheetWriter{f: f, sheet: bookingsSheet}
	headers := []string{"ID", "Guest", "Registered name", "Email", "Hotel", "Room", "Check-in", "Check-out", "Nights", "Total", "Status", "Created"}
	for i, h := range headers {
		w.set(i+1, 1, h)
	}

	var revenue float64
	for i, b := range rows {
		row := i + 2
		registered := ""
		if b.UserNameFull != nil {
			registered = *b.UserNameFull
		}
		values := []any{
			b.ID, b.UserName, registered, b.Email, b.HotelName, b.RoomType,
			b.CheckIn.String(), b.CheckOut.String(), b.Stay().Nights(),
			b.TotalPrice, string(b.Status), b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			w.set(col+1, row, v)
		}
		if b.Active() {
			revenue += b.TotalPrice
		}
	}

	summaryRow := len(rows) + 3
	w.set(1, summaryRow, "Revenue")
	w.set(10, summaryRow, revenue)

	w.width("A", "A", 8)
	w.width("B", "F", 22)
	w.width("G", "I", 12)
	w.width("J", "K", 12)
	w.width("L", "L", 20)
	if w.err != nil {
		return nil, "", fmt.Errorf("fill sheet: %w", w.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("bookings_%s.xlsx", now.Format("20060102")), nil
}

// sheetWriter keeps the first excelize error and skips the calls after it.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *sheetWriter) set(col, row int, v any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, v)
}

func (w *sheetWriter) width(from, to string, width float64) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetColWidth(w.sheet, from, to, width)
}
