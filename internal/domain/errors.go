package domain

import "errors"

// Auth errors
var (
	ErrUserExists          = errors.New("user with this email or username already exists")
	ErrPasswordsDoNotMatch = errors.New("passwords do not match")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
)

// Book errors
var (
	ErrBookNotFound  = errors.New("book not found")
	ErrBookForbidden = errors.New("you don't have access to this book")
)

// Image upload validation errors
var (
	ErrImageEmpty          = errors.New("image file is empty")
	ErrImageTypeNotAllowed = errors.New("image type must be jpeg, png or webp")
	ErrImageTooLarge       = errors.New("image exceeds the 5MB size limit")
)
