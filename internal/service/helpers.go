package service

import (
	"errors"

	"gorm.io/gorm"
)

func isMissingRecord(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
