package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	intdb "hotelbooking/internal/db"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/repositories"
	"hotelbooking/internal/utils"
)

type BookingService struct {
	DB       *sqlx.DB
	Notifier notification.Notifier
	Log      *slog.Logger
}

func (s BookingService) bookings(q intdb.Querier) repositories.BookingRepo {
	return repositories.BookingRepo{DB: q}
}

func (s BookingService) notifier() notification.Notifier {
	if s.Notifier != nil {
		return s.Notifier
	}
	return notification.Nop{}
}

// notify hands the event to the notifier off the request path. The
// request context is detached so a finished response does not cancel it.
func (s BookingService) notify(ctx context.Context, fn func(context.Context, notification.Notifier)) {
	n := s.notifier()
	bg := context.WithoutCancel(ctx)
	go fn(bg, n)
}

func (s BookingService) log() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// ParseStay validates a pair of raw query dates.
func ParseStay(checkIn, checkOut string) (models.StayRange, error) {
	if strings.TrimSpace(checkIn) == "" || strings.TrimSpace(checkOut) == "" {
		return models.StayRange{}, domain.ValidationError{Msg: "check_in and check_out dates are required"}
	}
	in, err := models.ParseDate(checkIn)
	if err != nil {
		return models.StayRange{}, domain.ValidationError{Field: "check_in", Msg: "must be a YYYY-MM-DD date", Err: err}
	}
	out, err := models.ParseDate(checkOut)
	if err != nil {
		return models.StayRange{}, domain.ValidationError{Field: "check_out", Msg: "must be a YYYY-MM-DD date", Err: err}
	}
	return models.StayRange{CheckIn: in, CheckOut: out}, nil
}

// Available reports whether stay conflicts with none of the existing
// non-cancelled bookings.
func Available(existing []models.Booking, stay models.StayRange) bool {
	for _, b := range existing {
		if b.Active() && b.Stay().Overlaps(stay) {
			return false
		}
	}
	return true
}

func availability(ok bool) models.Availability {
	if ok {
		return models.Availability{Available: true, Message: models.MsgRoomAvailable}
	}
	return models.Availability{Available: false, Message: models.MsgRoomUnavailable}
}

// CheckAvailability is a plain read. An unknown room has no bookings and
// therefore reports available.
func (s BookingService) CheckAvailability(ctx context.Context, roomID int64, stay models.StayRange) (models.Availability, error) {
	existing, err := s.bookings(s.DB).ListActiveByRoom(ctx, roomID)
	if err != nil {
		return models.Availability{}, err
	}
	return availability(Available(existing, stay)), nil
}

// Create locks the room row, re-runs the overlap check against the locked
// state and inserts, all in one transaction. Concurrent requests for the
// same room are serialised on the lock.
func (s BookingService) Create(ctx context.Context, in models.CreateBookingInput) (models.Booking, error) {
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return models.Booking{}, domain.ValidationError{Msg: "check_in and check_out dates are required"}
	}
	in.UserName = strings.TrimSpace(in.UserName)
	in.Email = utils.NormalizeEmail(in.Email)

	var created models.Booking
	err := intdb.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		if err := (repositories.RoomRepo{DB: tx}).LockByID(ctx, in.RoomID); err != nil {
			return err
		}
		repo := s.bookings(tx)
		existing, err := repo.ListActiveByRoom(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if !Available(existing, in.Stay()) {
			return domain.ConflictError{Msg: models.MsgRoomUnavailable}
		}
		created, err = repo.Create(ctx, in)
		return err
	})
	if err != nil {
		if !domain.IsConflict(err) && !domain.IsNotFound(err) && !domain.IsPersistence(err) {
			err = domain.PersistenceError{Err: err}
		}
		return models.Booking{}, err
	}

	s.log().Info("booking created",
		slog.Int64("booking_id", created.ID),
		slog.Int64("room_id", created.RoomID),
		slog.String("check_in", created.CheckIn.String()),
		slog.String("check_out", created.CheckOut.String()),
	)
	s.notify(ctx, func(ctx context.Context, n notification.Notifier) { n.BookingCreated(ctx, created) })
	return created, nil
}

// Cancel marks the booking cancelled regardless of its current status or
// who asks.
func (s BookingService) Cancel(ctx context.Context, id int64) (models.Booking, error) {
	b, err := s.bookings(s.DB).UpdateStatus(ctx, id, domain.BookingCancelled)
	if err != nil {
		return models.Booking{}, err
	}
	s.log().Info("booking cancelled", slog.Int64("booking_id", id))
	s.notify(ctx, func(ctx context.Context, n notification.Notifier) { n.BookingCancelled(ctx, b) })
	return b, nil
}

// SetStatus is the admin override. Re-confirming a cancelled booking does
// not re-check availability.
func (s BookingService) SetStatus(ctx context.Context, id int64, status string) (models.Booking, error) {
	st := domain.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "must be confirmed or cancelled"}
	}
	b, err := s.bookings(s.DB).UpdateStatus(ctx, id, st)
	if err != nil {
		return models.Booking{}, err
	}
	s.log().Info("booking status set", slog.Int64("booking_id", id), slog.String("status", string(st)))
	return b, nil
}

func (s BookingService) ListByEmail(ctx context.Context, email string) ([]models.BookingDetail, error) {
	return s.bookings(s.DB).ListByEmail(ctx, utils.NormalizeEmail(email))
}

func (s BookingService) ListAll(ctx context.Context) ([]models.BookingDetail, error) {
	return s.bookings(s.DB).ListAll(ctx)
}
