package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

type GormRepo struct {
	DB *gorm.DB
}

// isDuplicate recognizes unique-constraint violations across the drivers we
// run against: gorm's translated error, postgres, and sqlite in tests.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
