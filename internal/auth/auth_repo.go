package auth

import (
	"context"

	"go-reqdesk/internal/account"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*account.Account, error)
	GetByID(ctx context.Context, id uint) (*account.Account, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	var acc account.Account
	err := r.db.WithContext(ctx).
		First(&acc, "email = ?", email).Error
	return &acc, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*account.Account, error) {
	var acc account.Account
	err := r.db.WithContext(ctx).
		First(&acc, "id = ?", id).Error
	return &acc, err
}
