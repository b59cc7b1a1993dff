package domain

import "errors"

// Store-level errors. Usecases translate them into apperror values.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
)
