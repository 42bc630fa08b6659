package controllers

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrImageRequired      = errors.New("image is required")
	ErrUnsupportedImage   = errors.New("file is not a supported image")

	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrPostNotFound  = fmt.Errorf("post %w", ErrNotFound)
	ErrBoardNotFound = fmt.Errorf("board %w", ErrNotFound)
)

// ImageUpload is an image received from a client, ready for the image store.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
	Size        int64
}
