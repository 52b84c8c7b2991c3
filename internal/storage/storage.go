package storage

import "errors"

var (
	ErrEmailExists   = errors.New("email already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrPlaceNotFound = errors.New("place not found")
)
