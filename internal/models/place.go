package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// PlaceFields are the owner-editable fields of a listing. An update replaces
// all of them at once.
type PlaceFields struct {
	Title       string   `bson:"title" json:"title"`
	Address     string   `bson:"address" json:"address"`
	Photos      []string `bson:"photos" json:"photos"`
	Description string   `bson:"description" json:"description"`
	Perks       []string `bson:"perks" json:"perks"`
	ExtraInfo   string   `bson:"extraInfo" json:"extraInfo"`
	CheckIn     string   `bson:"checkIn" json:"checkIn"`
	CheckOut    string   `bson:"checkOut" json:"checkOut"`
	MaxGuests   int      `bson:"maxGuests" json:"maxGuests"`
	Price       float64  `bson:"price" json:"price"`
}

// Place is a bookable listing owned by exactly one user.
type Place struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	PlaceFields `bson:",inline"`
}

// Normalize replaces nil slices so documents always carry arrays.
func (f *PlaceFields) Normalize() {
	if f.Photos == nil {
		f.Photos = []string{}
	}
	if f.Perks == nil {
		f.Perks = []string{}
	}
}
