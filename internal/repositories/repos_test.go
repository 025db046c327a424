package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/domain/models"
)

var bookingCols = []string{"id", "user_name", "email", "room_id", "check_in", "check_out", "total_price", "status", "created_at"}

func newMock(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, driver), mock
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func bookingRow(id int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).
		AddRow(id, "Ann", "ann@example.com", 3, day("2024-06-01"), day("2024-06-05"), 800.0, status, time.Now())
}

func ptr(f float64) *float64 { return &f }

func TestBookingCreateInsertsConfirmed(t *testing.T) {
	db, mock := newMock(t, "mysql")
	in := models.CreateBookingInput{
		UserName: "Ann", Email: "ann@example.com", RoomID: 3,
		CheckIn: models.DateOf(day("2024-06-01")), CheckOut: models.DateOf(day("2024-06-05")),
		TotalPrice: 800,
	}
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs("Ann", "ann@example.com", int64(3), sqlmock.AnyArg(), sqlmock.AnyArg(), 800.0, domain.BookingConfirmed).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(`FROM bookings b WHERE b.id = \?`).WithArgs(int64(11)).WillReturnRows(bookingRow(11, "confirmed"))

	b, err := BookingRepo{DB: db}.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(11), b.ID)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, "2024-06-05", b.CheckOut.String())
	assert.Equal(t, 800.0, b.TotalPrice)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateSurfacesForeignKeyError(t *testing.T) {
	db, mock := newMock(t, "mysql")
	fk := errors.New("Error 1452: Cannot add or update a child row: a foreign key constraint fails")
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnError(fk)

	_, err := BookingRepo{DB: db}.Create(context.Background(), models.CreateBookingInput{RoomID: 999})
	require.Error(t, err)
	assert.True(t, domain.IsPersistence(err))
	assert.ErrorIs(t, err, fk)
	assert.Contains(t, err.Error(), "foreign key constraint fails")
}

func TestBookingGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`FROM bookings b WHERE b.id = \?`).WithArgs(int64(999)).WillReturnError(sql.ErrNoRows)

	_, err := BookingRepo{DB: db}.GetByID(context.Background(), 999)
	assert.True(t, domain.IsNotFound(err))
}

func TestBookingListActiveByRoomExcludesCancelled(t *testing.T) {
	db, mock := newMock(t, "postgres")
	mock.ExpectQuery(`WHERE b.room_id = \$1 AND b.status <> \$2`).
		WithArgs(int64(3), domain.BookingCancelled).
		WillReturnRows(bookingRow(1, "confirmed"))

	got, err := BookingRepo{DB: db}.ListActiveByRoom(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Active())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdateStatusIsIdempotent(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectExec(`UPDATE bookings SET status = \? WHERE id = \?`).
		WithArgs(domain.BookingCancelled, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM bookings b WHERE b.id = \?`).WithArgs(int64(5)).WillReturnRows(bookingRow(5, "cancelled"))

	b, err := BookingRepo{DB: db}.UpdateStatus(context.Background(), 5, domain.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestBookingListByEmailJoinsDisplayFields(t *testing.T) {
	db, mock := newMock(t, "mysql")
	cols := append(append([]string{}, bookingCols...), "room_type", "hotel_name", "hotel_location", "hotel_image")
	mock.ExpectQuery(`(?s)JOIN rooms r.*JOIN hotels h.*WHERE b.email = \?.*ORDER BY b.check_in DESC`).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "Ann", "ann@example.com", 3, day("2024-07-01"), day("2024-07-03"), 400.0, "confirmed", time.Now(), "Deluxe Room", "Grand Luxury Hotel", "New York, NY", nil))

	got, err := BookingRepo{DB: db}.ListByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Deluxe Room", got[0].RoomType)
	assert.Equal(t, "New York, NY", *got[0].HotelLocation)
	assert.Nil(t, got[0].HotelImage)
}

func TestBookingListAllLeftJoinsUsers(t *testing.T) {
	db, mock := newMock(t, "mysql")
	cols := append(append([]string{}, bookingCols...), "room_type", "hotel_name", "user_name_full")
	mock.ExpectQuery(`(?s)LEFT JOIN users u ON b.email = u.email.*ORDER BY b.created_at DESC`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(2, "Ann", "guest@example.com", 3, day("2024-07-01"), day("2024-07-03"), 400.0, "confirmed", time.Now(), "Deluxe Room", "Grand Luxury Hotel", nil))

	got, err := BookingRepo{DB: db}.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].UserNameFull)
}

func TestRoomLockByIDMissingRoom(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \? FOR UPDATE`).WithArgs(int64(8)).WillReturnError(sql.ErrNoRows)

	err := RoomRepo{DB: db}.LockByID(context.Background(), 8)
	assert.True(t, domain.IsNotFound(err))
}

func TestRoomCreateStoresAmenitiesAsJSON(t *testing.T) {
	db, mock := newMock(t, "postgres")
	mock.ExpectQuery(`INSERT INTO rooms .* RETURNING id`).
		WithArgs(int64(1), "Suite", 300.0, 2, `["WiFi","Spa"]`, true, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(13))
	mock.ExpectQuery(`FROM rooms WHERE id = \$1`).WithArgs(int64(13)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hotel_id", "type", "price", "capacity", "amenities", "available", "image_url"}).
			AddRow(13, 1, "Suite", 300.0, 2, `["WiFi","Spa"]`, true, nil))

	room, err := RoomRepo{DB: db}.Create(context.Background(), models.RoomInput{
		HotelID: 1, Type: "Suite", Price: 300, Capacity: 2, Amenities: models.Amenities{"WiFi", "Spa"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(13), room.ID)
	assert.True(t, room.Available)
	assert.Equal(t, models.Amenities{"WiFi", "Spa"}, room.Amenities)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomGetByIDMissingIsNotFound(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`FROM rooms WHERE id = \?`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := RoomRepo{DB: db}.GetByID(context.Background(), 99)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Room not found", err.Error())
}

func TestRoomListByHotel(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`FROM rooms WHERE hotel_id = \?`).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hotel_id", "type", "price", "capacity", "amenities", "available", "image_url"}).
			AddRow(1, 1, "Deluxe Room", "200.00", 2, []byte(`["WiFi","TV"]`), true, nil))

	rooms, err := RoomRepo{DB: db}.ListByHotel(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, 200.0, rooms[0].Price)
	assert.Equal(t, models.Amenities{"WiFi", "TV"}, rooms[0].Amenities)
}

var hotelCols = []string{"id", "name", "location", "description", "rating", "image_url"}

func TestHotelSearchWithoutFilters(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`^SELECT h.id, h.name, h.location, h.description, h.rating, h.image_url FROM hotels h ORDER BY h.id$`).
		WillReturnRows(sqlmock.NewRows(hotelCols).
			AddRow(1, "Grand Luxury Hotel", "New York, NY", nil, 4.8, nil).
			AddRow(2, "Oceanview Resort", "Miami, FL", nil, 4.5, nil))

	got, err := HotelRepo{DB: db}.Search(context.Background(), models.HotelFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelSearchLocationIsCaseInsensitiveSubstring(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`FROM hotels h WHERE LOWER\(h.location\) LIKE \? ORDER BY h.id`).
		WithArgs("%miami%").
		WillReturnRows(sqlmock.NewRows(hotelCols).AddRow(2, "Oceanview Resort", "Miami, FL", nil, 4.5, nil))

	got, err := HotelRepo{DB: db}.Search(context.Background(), models.HotelFilter{Location: "Miami"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Miami, FL", got[0].Location)
}

func TestHotelSearchEscapesLikeWildcards(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`LIKE \?`).WithArgs(`%100\%\_off%`).WillReturnRows(sqlmock.NewRows(hotelCols))

	got, err := HotelRepo{DB: db}.Search(context.Background(), models.HotelFilter{Location: "100%_off"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestHotelSearchPriceUsesDistinctJoin(t *testing.T) {
	db, mock := newMock(t, "postgres")
	mock.ExpectQuery(`SELECT DISTINCT .* FROM hotels h JOIN rooms r ON r.hotel_id = h.id WHERE LOWER\(h.location\) LIKE \$1 AND r.price >= \$2 ORDER BY h.id`).
		WithArgs("%denver%", 400.0).
		WillReturnRows(sqlmock.NewRows(hotelCols).AddRow(3, "Mountain Retreat", "Denver, CO", nil, 4.7, nil))

	got, err := HotelRepo{DB: db}.Search(context.Background(), models.HotelFilter{Location: "denver", MinPrice: ptr(400)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelSearchMaxPriceOnly(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`SELECT DISTINCT .* WHERE r.price <= \? ORDER BY h.id`).
		WithArgs(100.0).
		WillReturnRows(sqlmock.NewRows(hotelCols).AddRow(4, "City Center Inn", "Chicago, IL", nil, 3.9, nil))

	got, err := HotelRepo{DB: db}.Search(context.Background(), models.HotelFilter{MaxPrice: ptr(100)})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHotelDeleteMissingRow(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectExec(`DELETE FROM hotels WHERE id = \?`).WithArgs(int64(42)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := HotelRepo{DB: db}.Delete(context.Background(), 42)
	assert.True(t, domain.IsNotFound(err))
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`FROM users WHERE email = \?`).WithArgs("nobody@example.com").WillReturnError(sql.ErrNoRows)

	_, err := UserRepo{DB: db}.GetByEmail(context.Background(), "nobody@example.com")
	assert.True(t, domain.IsNotFound(err))
}

func TestUserRoleOf(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`SELECT role FROM users WHERE email = \?`).WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))

	role, err := UserRepo{DB: db}.RoleOf(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestStatsSummary(t *testing.T) {
	db, mock := newMock(t, "mysql")
	mock.ExpectQuery(`COALESCE\(SUM\(total_price\), 0\) FROM bookings WHERE status <> \?`).
		WithArgs(domain.BookingCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"users", "hotels", "bookings", "revenue"}).AddRow(3, 6, 4, "1250.00"))

	s, err := StatsRepo{DB: db}.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Stats{Users: 3, Hotels: 6, Bookings: 4, Revenue: 1250}, s)
}
