package services

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrItemNotFound       = errors.New("item not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrCarouselNotFound   = errors.New("carousel not found")
)

// credentialError carries one of the two user-facing login messages while
// still matching ErrInvalidCredentials under errors.Is.
type credentialError struct {
	msg string
}

func (e *credentialError) Error() string { return e.msg }

func (e *credentialError) Is(target error) bool { return target == ErrInvalidCredentials }

const (
	msgUnknownEmail = "The email address that you've entered is invalid!"
	msgWrongPassword = "The email address and the password that you've entered doesn't match any account!"
	msgWrongCurrentPassword = "Your current password was incorrect!"
)

// opTimeout bounds every store round trip.
const opTimeout = 10 * time.Second
