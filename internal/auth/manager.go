package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kvasnev/hotel_listing/internal/errs"
	"github.com/kvasnev/hotel_listing/internal/logging"
	"github.com/kvasnev/hotel_listing/internal/models"
	"github.com/kvasnev/hotel_listing/internal/transport"
)

const (
	loginProvider  = "HotelListingAPI"
	refreshPurpose = "RefreshToken"
	defaultRole    = "User"
)

// Manager orchestrates registration, login and token rotation. It holds no
// per-request state: every operation resolves its own user.
type Manager struct {
	Store    CredentialStore
	Secret   []byte
	TokenTTL time.Duration
}

func NewManager(store CredentialStore, secret []byte, tokenTTL time.Duration) *Manager {
	if tokenTTL == 0 {
		tokenTTL = 15 * time.Minute
	}
	return &Manager{Store: store, Secret: secret, TokenTTL: tokenTTL}
}

// Register creates the user (username = email) and assigns the default role.
// Credential-store rejections come back as values, not errors.
func (m *Manager) Register(ctx context.Context, req transport.RegisterRequest) (errs.ValidationErrors, error) {
	user := models.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	verrs, err := m.Store.CreateUser(ctx, &user, req.Password)
	if err != nil {
		return nil, err
	}
	if len(verrs) > 0 {
		return verrs, nil
	}
	if err := m.Store.AddToRole(ctx, &user, defaultRole); err != nil {
		return nil, err
	}
	return nil, nil
}

// Login fails closed: an unknown email and a wrong password both return
// (nil, nil) so the two cases cannot be told apart.
func (m *Manager) Login(ctx context.Context, req transport.LoginRequest) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := m.Store.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !m.Store.CheckPassword(ctx, user, req.Password) {
		l.Warn("login_failed", "reason", "invalid email or password")
		return nil, nil
	}

	return m.issuePair(ctx, user)
}

// issuePair treats access + refresh issuance as one unit: the access token
// is generated first, so a failure there leaves the stored refresh slot
// untouched.
func (m *Manager) issuePair(ctx context.Context, user *models.User) (*transport.AuthResponse, error) {
	token, err := m.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	refresh, err := m.CreateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &transport.AuthResponse{Token: token, UserID: user.ID, RefreshToken: refresh}, nil
}

// GenerateAccessToken signs a short-lived HS256 token carrying the subject
// email, a unique jti, the uid and the user's role set.
func (m *Manager) GenerateAccessToken(ctx context.Context, user *models.User) (string, error) {
	roles, err := m.Store.GetRoles(ctx, user)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := AccessClaims{
		Email: user.Email,
		UID:   user.ID,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
}

// CreateRefreshToken rotates the user's refresh slot: the old value is gone
// and the new one stored as a single atomic unit.
func (m *Manager) CreateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	value := hex.EncodeToString(buf)

	if err := m.Store.SetToken(ctx, user, loginProvider, refreshPurpose, value); err != nil {
		return "", err
	}
	return value, nil
}

// VerifyRefreshToken checks the presented refresh token against the stored
// slot and rotates on success. The access token may be expired, but its
// signature must still verify before the subject claim is trusted. A
// mismatched refresh value is treated as reuse: the stored slot is cleared
// and the user's security stamp rotated, so the outstanding refresh token is
// dead along with every other session, and the call fails.
func (m *Manager) VerifyRefreshToken(ctx context.Context, req transport.AuthResponse) (*transport.AuthResponse, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := ExpiredAccessClaimsFromToken(req.Token, m.Secret)
	if err != nil {
		l.Warn("refresh_failed", "reason", "malformed or tampered access token")
		return nil, nil
	}

	user, err := m.Store.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID != req.UserID {
		l.Warn("refresh_failed", "reason", "subject does not resolve to requesting user")
		return nil, nil
	}

	stored, err := m.Store.GetToken(ctx, user, loginProvider, refreshPurpose)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != req.RefreshToken {
		l.Warn("refresh_reuse_detected", "user_id", user.ID)
		if err := m.Store.RemoveToken(ctx, user, loginProvider, refreshPurpose); err != nil {
			return nil, err
		}
		if err := m.Store.UpdateSecurityStamp(ctx, user); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return m.issuePair(ctx, user)
}
