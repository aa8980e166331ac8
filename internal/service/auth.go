package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/config"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
	"github.com/souqly/souqly-backend/internal/repository"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair is the access/refresh pair returned on register, login and
// refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult is the full authentication response.
type AuthResult struct {
	User   models.SafeUser `json:"user"`
	Tokens TokenPair       `json:"tokens"`
}

// AuthService handles registration, login and token issuance.
type AuthService struct {
	userRepo repository.UserRepository
	cfg      config.AuthConfig
	logger   *logging.Logger
}

func NewAuthService(userRepo repository.UserRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logging.New("auth-service"),
	}
}

// Register creates an account and signs the user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, apperrors.NewValidation("Name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperrors.NewValidation("A valid email is required")
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidation("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, name, email, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", logging.Fields{"user_id": user.ID})
	return s.authResult(user)
}

// Login verifies credentials. Unknown email and wrong password produce the
// same error so the response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewAuthentication("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewAuthentication("Invalid email or password")
	}
	if !user.Active {
		return nil, apperrors.NewAuthentication("Account is deactivated")
	}

	s.logger.Info("User logged in", logging.Fields{"user_id": user.ID})
	return s.authResult(user)
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	identity, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	active, err := s.userRepo.GetStatus(ctx, identity.UserID)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewAuthentication("Invalid refresh token")
	}
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperrors.NewAuthentication("Account is deactivated")
	}

	pair, err := s.issueTokens(*identity)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// ParseAccessToken validates an access token and returns the identity it
// carries. Used by the auth middleware.
func (s *AuthService) ParseAccessToken(tokenString string) (*models.Identity, error) {
	return s.parseToken(tokenString, tokenTypeAccess)
}

func (s *AuthService) authResult(user *models.User) (*AuthResult, error) {
	identity := models.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
	tokens, err := s.issueTokens(identity)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Safe(), Tokens: tokens}, nil
}

func (s *AuthService) issueTokens(identity models.Identity) (TokenPair, error) {
	access, err := s.signToken(identity, tokenTypeAccess, s.cfg.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.signToken(identity, tokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) signToken(identity models.Identity, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(identity.UserID, 10),
		"email": identity.Email,
		"role":  identity.Role,
		"typ":   typ,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) parseToken(tokenString, wantType string) (*models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewAuthentication("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.NewAuthentication("Invalid or expired token")
	}
	if typ, _ := claims["typ"].(string); typ != wantType {
		return nil, apperrors.NewAuthentication("Invalid or expired token")
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, apperrors.NewAuthentication("Invalid or expired token")
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &models.Identity{UserID: userID, Email: email, Role: role}, nil
}
