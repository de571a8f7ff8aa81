package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/toggar/toggar-backend/internal/models"
)

func (r *GormRepo) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&acc).Error; err != nil {
		return nil, err
	}
	return &acc, nil
}

// CreateAccount surfaces a duplicate email as ErrEmailTaken so the caller
// can answer "already exists" instead of a blanket failure. Two racing
// registrations both land here; the loser gets the same error.
func (r *GormRepo) CreateAccount(ctx context.Context, acc *models.Account) error {
	if err := r.DB.WithContext(ctx).Create(acc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}
