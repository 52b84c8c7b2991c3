package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the stored account document. Password holds the bcrypt hash and
// is serialized as-is, matching what existing clients receive on register
// and login.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
}

// Profile is the public subset of a user returned by /profile.
type Profile struct {
	Name  string             `json:"name"`
	Email string             `json:"email"`
	ID    primitive.ObjectID `json:"_id"`
}

func (u *User) Profile() Profile {
	return Profile{
		Name:  u.Name,
		Email: u.Email,
		ID:    u.ID,
	}
}
