package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
