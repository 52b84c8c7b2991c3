package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayBooker/internal/config"
	"stayBooker/internal/models"
	"stayBooker/internal/storage"
)

const (
	usersCollection    = "users"
	placesCollection   = "places"
	bookingsCollection = "bookings"

	connectTimeout = 10 * time.Second
)

type Storage struct {
	client   *mongo.Client
	users    *mongo.Collection
	places   *mongo.Collection
	bookings *mongo.Collection
}

func InitDB(ctx context.Context, cfg *config.Storage) (*Storage, error) {
	const op = "storage.mongodb.InitDB"

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	s := New(client.Database(cfg.MongoDB))

	if err = s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// New wraps an already connected database.
func New(db *mongo.Database) *Storage {
	return &Storage{
		client:   db.Client(),
		users:    db.Collection(usersCollection),
		places:   db.Collection(placesCollection),
		bookings: db.Collection(bookingsCollection),
	}
}

// EnsureIndexes creates the unique email index users rely on for
// duplicate detection.
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	const op = "storage.mongodb.CreateUser"

	user.ID = primitive.NewObjectID()

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.mongodb.GetUserByEmail"

	var user models.User

	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	const op = "storage.mongodb.GetUserByID"

	var user models.User

	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *Storage) CreatePlace(ctx context.Context, owner primitive.ObjectID, fields models.PlaceFields) (*models.Place, error) {
	const op = "storage.mongodb.CreatePlace"

	fields.Normalize()

	place := &models.Place{
		ID:          primitive.NewObjectID(),
		Owner:       owner,
		PlaceFields: fields,
	}

	if _, err := s.places.InsertOne(ctx, place); err != nil {
		return nil, fmt.Errorf("%s: failed to create place: %w", op, err)
	}

	return place, nil
}

func (s *Storage) GetPlace(ctx context.Context, id primitive.ObjectID) (*models.Place, error) {
	const op = "storage.mongodb.GetPlace"

	var place models.Place

	err := s.places.FindOne(ctx, bson.M{"_id": id}).Decode(&place)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPlaceNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get place: %w", op, err)
	}

	return &place, nil
}

func (s *Storage) GetPlacesByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Place, error) {
	const op = "storage.mongodb.GetPlacesByOwner"

	places, err := s.findPlaces(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return places, nil
}

// GetAllPlaces returns every listing in insertion order.
func (s *Storage) GetAllPlaces(ctx context.Context) ([]models.Place, error) {
	const op = "storage.mongodb.GetAllPlaces"

	places, err := s.findPlaces(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return places, nil
}

// UpdatePlace overwrites the editable fields of a listing. The owner is
// never touched. Concurrent updates are last-write-wins.
func (s *Storage) UpdatePlace(ctx context.Context, id primitive.ObjectID, fields models.PlaceFields) error {
	const op = "storage.mongodb.UpdatePlace"

	fields.Normalize()

	res, err := s.places.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("%s: failed to update place: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPlaceNotFound)
	}

	return nil
}

func (s *Storage) CreateBooking(ctx context.Context, user primitive.ObjectID, fields models.BookingFields) (*models.Booking, error) {
	const op = "storage.mongodb.CreateBooking"

	booking := &models.Booking{
		ID:            primitive.NewObjectID(),
		BookingFields: fields,
		User:          user,
	}

	if _, err := s.bookings.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("%s: failed to create booking: %w", op, err)
	}

	return booking, nil
}

// GetBookingsByUser returns the user's bookings with the place reference
// resolved to the full listing document.
func (s *Storage) GetBookingsByUser(ctx context.Context, user primitive.ObjectID) ([]models.BookingWithPlace, error) {
	const op = "storage.mongodb.GetBookingsByUser"

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": user}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         placesCollection,
			"localField":   "place",
			"foreignField": "_id",
			"as":           "place",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$place",
			"preserveNullAndEmptyArrays": true,
		}}},
	}

	cursor, err := s.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get bookings: %w", op, err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.BookingWithPlace, 0)
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("%s: failed to decode bookings: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) findPlaces(ctx context.Context, filter bson.M) ([]models.Place, error) {
	cursor, err := s.places.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get places: %w", err)
	}
	defer cursor.Close(ctx)

	places := make([]models.Place, 0)
	if err = cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}

	return places, nil
}
