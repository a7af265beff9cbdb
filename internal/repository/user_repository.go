package repository

import (
	"context"

	"github.com/manmeet1049/bizzler/internal/domain/users"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *users.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "User")
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*users.User, error) {
	var user users.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "User")
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var user users.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "User")
	}
	return &user, nil
}
