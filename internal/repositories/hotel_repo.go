package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	intdb "hotelbooking/internal/db"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

const hotelColumns = `h.id, h.name, h.location, h.description, h.rating, h.image_url`

type HotelRepo struct {
	DB intdb.Querier
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns hotels matching every supplied filter. Price bounds join
// rooms and keep a hotel if any one of its rooms falls in range.
func (r HotelRepo) Search(ctx context.Context, f models.HotelFilter) ([]models.Hotel, error) {
	var (
		sb    strings.Builder
		where []string
		args  []any
	)
	if f.HasPrice() {
		sb.WriteString(`SELECT DISTINCT ` + hotelColumns + ` FROM hotels h JOIN rooms r ON r.hotel_id = h.id`)
	} else {
		sb.WriteString(`SELECT ` + hotelColumns + ` FROM hotels h`)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		where = append(where, `LOWER(h.location) LIKE ?`)
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(loc))+"%")
	}
	if f.MinPrice != nil {
		where = append(where, `r.price >= ?`)
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, `r.price <= ?`)
		args = append(args, *f.MaxPrice)
	}
	if len(where) > 0 {
		sb.WriteString(` WHERE ` + strings.Join(where, ` AND `))
	}
	sb.WriteString(` ORDER BY h.id`)

	out := []models.Hotel{}
	if err := sqlx.SelectContext(ctx, r.DB, &out, r.DB.Rebind(sb.String()), args...); err != nil {
		return nil, domain.PersistenceError{Op: "search hotels", Err: err}
	}
	return out, nil
}

func (r HotelRepo) GetByID(ctx context.Context, id int64) (models.Hotel, error) {
	var h models.Hotel
	err := r.DB.QueryRowxContext(ctx, r.DB.Rebind(`SELECT `+hotelColumns+` FROM hotels h WHERE h.id = ?`), id).StructScan(&h)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Hotel{}, domain.NotFoundError{Resource: "Hotel", Err: err}
		}
		return models.Hotel{}, domain.PersistenceError{Op: "select hotel", Err: err}
	}
	return h, nil
}

func (r HotelRepo) Create(ctx context.Context, in models.HotelInput) (models.Hotel, error) {
	id, err := intdb.InsertID(ctx, r.DB, `
		INSERT INTO hotels (name, location, description, rating, image_url)
		VALUES (?, ?, ?, ?, ?)`,
		in.Name, in.Location, in.Description, in.Rating, in.ImageURL,
	)
	if err != nil {
		return models.Hotel{}, domain.PersistenceError{Op: "insert hotel", Err: err}
	}
	return models.Hotel{
		ID:          id,
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		Rating:      in.Rating,
		ImageURL:    in.ImageURL,
	}, nil
}

// Delete removes the hotel row. Rooms must already be gone.
func (r HotelRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, r.DB.Rebind(`DELETE FROM hotels WHERE id = ?`), id)
	if err != nil {
		return domain.PersistenceError{Op: "delete hotel", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "Hotel"}
	}
	return nil
}
