package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = gorm.ErrRecordNotFound
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
