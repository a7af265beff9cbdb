package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	"github.com/manmeet1049/bizzler/internal/domain/users"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// Refresh exchanges a refresh token from Login for a new access token.
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.RefreshResponse, error)
	CurrentUser(ctx context.Context, actor access.Actor) (*dto.MeResponse, error)
}

// Tokens carry a token_type claim so a refresh token is never accepted where an
// access token is expected.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type authService struct {
	ServiceParams
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{ServiceParams: params}
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}

	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, ierr.NewValidationError("email")
	}
	if !isPasswordStrong(req.Password) {
		return nil, ierr.WithError(ierr.NewValidationError("password")).
			WithHint("Password must be at least 8 characters long and contain both letters and numbers.").
			Mark(ierr.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to hash password.").
			Mark(ierr.ErrDatabase)
	}

	user := &users.User{Email: email, Password: string(hashed), IsActive: true}
	if err := s.Store.Users.Create(ctx, user); err != nil {
		if ierr.IsConflict(err) {
			return nil, ierr.NewConflictError("Email already registered.", nil)
		}
		return nil, err
	}

	s.Logger.Infow("user registered", "user_id", user.ID)
	return &dto.UserResponse{ID: user.ID, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	invalid := ierr.NewError("invalid credentials").
		WithHint("Invalid credentials.").
		Mark(ierr.ErrUnauthorized)

	user, err := s.Store.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, invalid
	}
	if !user.IsActive {
		return nil, ierr.NewError("user inactive").
			WithHint("This account is disabled.").
			Mark(ierr.ErrPermissionDenied)
	}

	accessToken, err := s.issueToken(user, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.issueToken(user, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Access: accessToken, Refresh: refresh, User: user.ID, Email: user.Email}, nil
}

func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.RefreshResponse, error) {
	invalid := ierr.NewError("invalid refresh token").
		WithHint("Invalid or expired refresh token.").
		Mark(ierr.ErrUnauthorized)

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	token, err := parser.Parse(strings.TrimSpace(req.Refresh), func(*jwt.Token) (interface{}, error) {
		return []byte(s.Config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, invalid
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != TokenTypeRefresh {
		return nil, invalid
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, invalid
	}

	user, err := s.Store.Users.GetByID(ctx, uint(userID))
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ierr.NewError("user inactive").
			WithHint("This account is disabled.").
			Mark(ierr.ErrPermissionDenied)
	}

	accessToken, err := s.issueToken(user, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Access: accessToken}, nil
}

func (s *authService) issueToken(user *users.User, tokenType string) (string, error) {
	ttl := s.Config.JWTTTL
	if tokenType == TokenTypeRefresh {
		ttl = s.Config.JWTRefreshTTL
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"token_type": tokenType,
		"exp":        s.now().Add(ttl).Unix(),
	})

	signed, err := token.SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Could not create token.").
			Mark(ierr.ErrDatabase)
	}
	return signed, nil
}

func (s *authService) CurrentUser(ctx context.Context, actor access.Actor) (*dto.MeResponse, error) {
	user, err := s.Store.Users.GetByID(ctx, actor.ID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("User not found.").
				Mark(ierr.ErrUnauthorized)
		}
		return nil, err
	}

	list, err := s.Store.Businesses.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	me := &dto.MeResponse{
		User:       dto.UserResponse{ID: user.ID, Email: user.Email},
		Businesses: make([]dto.MeBusiness, 0, len(list)),
	}
	for i := range list {
		b := &list[i]
		m, err := s.Store.Businesses.GetMembership(ctx, user.ID, b.ID)
		if err != nil {
			return nil, err
		}
		caps := access.CapabilitiesFor(actor, b, m)
		me.Businesses = append(me.Businesses, dto.MeBusiness{
			ID:   b.ID,
			Name: b.Name,
			Type: b.Type,
			Role: m.Role,
			Capabilities: lo.Map(caps, func(c access.Capability, _ int) string {
				return string(c)
			}),
		})
	}
	return me, nil
}
