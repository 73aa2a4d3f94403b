package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		ConfirmEmail(ctx context.Context, id string, at time.Time) error

		CreateSession(ctx context.Context, session *entities.Session) error
		GetSessionByID(ctx context.Context, id string) (*entities.Session, error)
		ExtendSession(ctx context.Context, id string, expiresAt time.Time) error
		RevokeSession(ctx context.Context, id string, at time.Time) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ConfirmEmail(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ? AND email_confirmed_at IS NULL", id).
		Update("email_confirmed_at", at).Error
}

func (r *userRepository) CreateSession(ctx context.Context, session *entities.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *userRepository) GetSessionByID(ctx context.Context, id string) (*entities.Session, error) {
	var session entities.Session
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *userRepository) ExtendSession(ctx context.Context, id string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("expires_at", expiresAt).Error
}

func (r *userRepository) RevokeSession(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
}
