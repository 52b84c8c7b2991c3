package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/config"
	"stayBooker/internal/models"
	"stayBooker/internal/storage"
)

const uniqueViolation = "23505"

// Storage keeps each user, place and booking as a JSONB document keyed by
// its hex object id, so both drivers hand out the same identifiers.
type Storage struct {
	DB *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id  TEXT PRIMARY KEY,
	doc JSONB NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users ((doc->>'email'));

CREATE TABLE IF NOT EXISTS places (
	id         TEXT PRIMARY KEY,
	owner      TEXT NOT NULL,
	doc        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS places_owner_idx ON places (owner);

CREATE TABLE IF NOT EXISTS bookings (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	place_id   TEXT NOT NULL,
	doc        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS bookings_user_idx ON bookings (user_id);`

func InitDB(ctx context.Context, dbCfg *config.Database) (*Storage, error) {
	const op = "storage.postgres.InitDB"

	db, err := sql.Open("postgres", connString(dbCfg))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to create schema: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

func connString(dbCfg *config.Database) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.CreateUser"

	user.ID = primitive.NewObjectID()

	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%s: failed to encode user: %w", op, err)
	}

	_, err = s.DB.ExecContext(ctx, `INSERT INTO users (id, doc) VALUES ($1, $2)`, user.ID.Hex(), string(doc))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
		}
		return fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.GetUserByEmail"

	user, err := s.getUser(ctx, `SELECT doc FROM users WHERE doc->>'email' = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	const op = "storage.postgres.GetUserByID"

	user, err := s.getUser(ctx, `SELECT doc FROM users WHERE id = $1`, id.Hex())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var doc []byte

	err := s.DB.QueryRowContext(ctx, query, arg).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err = json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}

func (s *Storage) CreatePlace(ctx context.Context, owner primitive.ObjectID, fields models.PlaceFields) (*models.Place, error) {
	const op = "storage.postgres.CreatePlace"

	fields.Normalize()

	place := &models.Place{
		ID:          primitive.NewObjectID(),
		Owner:       owner,
		PlaceFields: fields,
	}

	doc, err := json.Marshal(place)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode place: %w", op, err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO places (id, owner, doc) VALUES ($1, $2, $3)`,
		place.ID.Hex(), owner.Hex(), string(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create place: %w", op, err)
	}

	return place, nil
}

func (s *Storage) GetPlace(ctx context.Context, id primitive.ObjectID) (*models.Place, error) {
	const op = "storage.postgres.GetPlace"

	var doc []byte

	err := s.DB.QueryRowContext(ctx, `SELECT doc FROM places WHERE id = $1`, id.Hex()).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPlaceNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get place: %w", op, err)
	}

	var place models.Place
	if err = json.Unmarshal(doc, &place); err != nil {
		return nil, fmt.Errorf("%s: failed to decode place: %w", op, err)
	}

	return &place, nil
}

func (s *Storage) GetPlacesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Place, error) {
	const op = "storage.postgres.GetPlacesByOwner"

	places, err := s.queryPlaces(ctx, `SELECT doc FROM places WHERE owner = $1 ORDER BY created_at ASC`, owner.Hex())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return places, nil
}

func (s *Storage) GetAllPlaces(ctx context.Context) ([]models.Place, error) {
	const op = "storage.postgres.GetAllPlaces"

	places, err := s.queryPlaces(ctx, `SELECT doc FROM places ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return places, nil
}

// UpdatePlace merges the editable fields over the stored document, which
// leaves _id and owner untouched.
func (s *Storage) UpdatePlace(ctx context.Context, id primitive.ObjectID, fields models.PlaceFields) error {
	const op = "storage.postgres.UpdatePlace"

	fields.Normalize()

	patch, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%s: failed to encode place: %w", op, err)
	}

	result, err := s.DB.ExecContext(ctx, `UPDATE places SET doc = doc || $2::jsonb WHERE id = $1`, id.Hex(), string(patch))
	if err != nil {
		return fmt.Errorf("%s: failed to update place: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to update place: %w", op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPlaceNotFound)
	}

	return nil
}

func (s *Storage) CreateBooking(ctx context.Context, user primitive.ObjectID, fields models.BookingFields) (*models.Booking, error) {
	const op = "storage.postgres.CreateBooking"

	booking := &models.Booking{
		ID:            primitive.NewObjectID(),
		BookingFields: fields,
		User:          user,
	}

	doc, err := json.Marshal(booking)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode booking: %w", op, err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO bookings (id, user_id, place_id, doc) VALUES ($1, $2, $3, $4)`,
		booking.ID.Hex(), user.Hex(), fields.Place.Hex(), string(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create booking: %w", op, err)
	}

	return booking, nil
}

func (s *Storage) GetBookingsByUser(ctx context.Context, user primitive.ObjectID) ([]models.BookingWithPlace, error) {
	const op = "storage.postgres.GetBookingsByUser"

	query := `
		SELECT b.doc, p.doc
		FROM bookings b
		LEFT JOIN places p ON p.id = b.place_id
		WHERE b.user_id = $1
		ORDER BY b.created_at ASC`

	rows, err := s.DB.QueryContext(ctx, query, user.Hex())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get bookings: %w", op, err)
	}
	defer rows.Close()

	bookings := make([]models.BookingWithPlace, 0)
	for rows.Next() {
		var bookingDoc, placeDoc []byte
		if err = rows.Scan(&bookingDoc, &placeDoc); err != nil {
			return nil, fmt.Errorf("%s: failed to scan booking: %w", op, err)
		}

		booking, err := decodeBookingWithPlace(bookingDoc, placeDoc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating bookings: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) queryPlaces(ctx context.Context, query string, args ...any) ([]models.Place, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get places: %w", err)
	}
	defer rows.Close()

	places := make([]models.Place, 0)
	for rows.Next() {
		var doc []byte
		if err = rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}

		var place models.Place
		if err = json.Unmarshal(doc, &place); err != nil {
			return nil, fmt.Errorf("failed to decode place: %w", err)
		}

		places = append(places, place)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating places: %w", err)
	}

	return places, nil
}

// decodeBookingWithPlace builds the expanded booking; placeDoc is nil when
// the LEFT JOIN found no listing.
func decodeBookingWithPlace(bookingDoc, placeDoc []byte) (models.BookingWithPlace, error) {
	var booking models.Booking
	if err := json.Unmarshal(bookingDoc, &booking); err != nil {
		return models.BookingWithPlace{}, fmt.Errorf("failed to decode booking: %w", err)
	}

	var place *models.Place
	if placeDoc != nil {
		place = &models.Place{}
		if err := json.Unmarshal(placeDoc, place); err != nil {
			return models.BookingWithPlace{}, fmt.Errorf("failed to decode place: %w", err)
		}
	}

	return booking.WithPlace(place), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
