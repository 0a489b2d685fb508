package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kvasnev/hotel_listing/internal/errs"
	"github.com/kvasnev/hotel_listing/internal/hash"
	"github.com/kvasnev/hotel_listing/internal/models"
)

// CredentialStore owns passwords, role assignments and named-token slots.
// Any backing store implements this directly; nothing inherits from a user
// base type.
type CredentialStore interface {
	CreateUser(ctx context.Context, user *models.User, password string) (errs.ValidationErrors, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CheckPassword(ctx context.Context, user *models.User, password string) bool
	AddToRole(ctx context.Context, user *models.User, role string) error
	GetRoles(ctx context.Context, user *models.User) ([]string, error)
	GetToken(ctx context.Context, user *models.User, provider, purpose string) (string, error)
	SetToken(ctx context.Context, user *models.User, provider, purpose, value string) error
	RemoveToken(ctx context.Context, user *models.User, provider, purpose string) error
	UpdateSecurityStamp(ctx context.Context, user *models.User) error
}

const minPasswordLen = 6

type GormCredentialStore struct {
	DB *gorm.DB
}

func NewGormCredentialStore(db *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{DB: db}
}

// CreateUser hashes the password and inserts the user. Rejections come back
// as ValidationErrors values; the error return is for store failures only.
func (s *GormCredentialStore) CreateUser(ctx context.Context, user *models.User, password string) (errs.ValidationErrors, error) {
	var verrs errs.ValidationErrors
	if !strings.Contains(user.Email, "@") {
		verrs = append(verrs, errs.FieldError{Code: "InvalidEmail", Description: "email is not valid"})
	}
	if len(password) < minPasswordLen {
		verrs = append(verrs, errs.FieldError{Code: "PasswordTooShort", Description: "password must be at least 6 characters"})
	}
	if len(verrs) > 0 {
		return verrs, nil
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = pwHash
	user.SecurityStamp = uuid.NewString()

	// the unique index on email is the authority, so a duplicate racing
	// past any earlier lookup still lands here
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.Validation("DuplicateEmail", "email is already taken"), nil
		}
		return nil, err
	}
	return nil, nil
}

// FindByEmail returns (nil, nil) when no such user exists; absence is not an
// error at this layer.
func (s *GormCredentialStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormCredentialStore) CheckPassword(_ context.Context, user *models.User, password string) bool {
	if user == nil {
		return false
	}
	return hash.CheckPassword(user.PasswordHash, password)
}

func (s *GormCredentialStore) AddToRole(ctx context.Context, user *models.User, role string) error {
	return s.DB.WithContext(ctx).Create(&models.UserRole{UserID: user.ID, Role: role}).Error
}

func (s *GormCredentialStore) GetRoles(ctx context.Context, user *models.User) ([]string, error) {
	roles := make([]string, 0, 2)
	err := s.DB.WithContext(ctx).Model(&models.UserRole{}).
		Where("user_id = ?", user.ID).
		Order("role ASC").
		Pluck("role", &roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (s *GormCredentialStore) GetToken(ctx context.Context, user *models.User, provider, purpose string) (string, error) {
	var token models.NamedToken
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND provider = ? AND purpose = ?", user.ID, provider, purpose).
		First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return token.Value, nil
}

// SetToken replaces the slot's value. Delete and insert run in one
// transaction, and the slot's unique index means two racing rotations cannot
// both commit; a reader never sees two values for one slot.
func (s *GormCredentialStore) SetToken(ctx context.Context, user *models.User, provider, purpose, value string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND provider = ? AND purpose = ?", user.ID, provider, purpose).
			Delete(&models.NamedToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.NamedToken{
			UserID:   user.ID,
			Provider: provider,
			Purpose:  purpose,
			Value:    value,
		}).Error
	})
}

func (s *GormCredentialStore) RemoveToken(ctx context.Context, user *models.User, provider, purpose string) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND provider = ? AND purpose = ?", user.ID, provider, purpose).
		Delete(&models.NamedToken{}).Error
}

// UpdateSecurityStamp rotates the user's stamp, revoking every session tied
// to the old one.
func (s *GormCredentialStore) UpdateSecurityStamp(ctx context.Context, user *models.User) error {
	stamp := uuid.NewString()
	if err := s.DB.WithContext(ctx).Model(user).Update("security_stamp", stamp).Error; err != nil {
		return err
	}
	user.SecurityStamp = stamp
	return nil
}
