package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// BookingFields are supplied by the client. Place is not checked against the
// listings collection.
type BookingFields struct {
	Place          primitive.ObjectID `bson:"place" json:"place"`
	CheckIn        Date               `bson:"checkIn" json:"checkIn"`
	CheckOut       Date               `bson:"checkOut" json:"checkOut"`
	NumberOfGuests int                `bson:"numberOfGuests" json:"numberOfGuests"`
	Name           string             `bson:"name" json:"name"`
	Phone          string             `bson:"phone" json:"phone"`
	Price          float64            `bson:"price" json:"price"`
}

type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookingFields `bson:",inline"`
	User          primitive.ObjectID `bson:"user" json:"user"`
}

// BookingWithPlace is a booking whose place reference has been replaced by
// the listing document. Place is nil when the listing no longer exists.
type BookingWithPlace struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Place          *Place             `bson:"place,omitempty" json:"place"`
	CheckIn        Date               `bson:"checkIn" json:"checkIn"`
	CheckOut       Date               `bson:"checkOut" json:"checkOut"`
	NumberOfGuests int                `bson:"numberOfGuests" json:"numberOfGuests"`
	Name           string             `bson:"name" json:"name"`
	Phone          string             `bson:"phone" json:"phone"`
	Price          float64            `bson:"price" json:"price"`
	User           primitive.ObjectID `bson:"user" json:"user"`
}

// WithPlace expands the booking with the given listing.
func (b *Booking) WithPlace(place *Place) BookingWithPlace {
	return BookingWithPlace{
		ID:             b.ID,
		Place:          place,
		CheckIn:        b.CheckIn,
		CheckOut:       b.CheckOut,
		NumberOfGuests: b.NumberOfGuests,
		Name:           b.Name,
		Phone:          b.Phone,
		Price:          b.Price,
		User:           b.User,
	}
}
