package repositories

import (
	"context"

	intdb "hotelbooking/internal/db"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

type StatsRepo struct {
	DB intdb.Querier
}

func (r StatsRepo) Summary(ctx context.Context) (models.Stats, error) {
	var s models.Stats
	err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(`
		SELECT
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM hotels) AS hotels,
			(SELECT COUNT(*) FROM bookings) AS bookings,
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status <> ?) AS revenue`),
		domain.BookingCancelled,
	).StructScan(&s)
	if err != nil {
		return models.Stats{}, domain.PersistenceError{Op: "select stats", Err: err}
	}
	return s, nil
}
