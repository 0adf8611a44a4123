package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mikkelsv/taskvault/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the fixed validity window of issued bearer tokens.
// Tokens are stateless: once issued they remain valid until expiry,
// logout does not revoke them.
const TokenTTL = 30 * time.Minute

// AuthService handles user registration, login, and bearer token
// issuance and verification.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user account. The password is stored as a
// bcrypt digest. Fails with domain.ErrDuplicateEmail if the email is
// already taken, regardless of password.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           newUserID(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and returns the matching user. Unknown
// email and wrong password both fail with domain.ErrUnauthorized so
// callers cannot tell which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// IssueToken signs a JWT asserting the given user id, expiring
// TokenTTL from now. The user id is carried in the userId claim (and
// mirrored in sub for standard tooling).
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    userID,
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken checks the signature and expiry of a token string and
// returns the embedded user id. It performs no database lookup: the
// signature alone is trusted, so a user deleted after issuance still
// verifies until the token expires.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", domain.ErrUnauthorized
	}

	return userID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func newUserID() string {
	return "user_" + uuid.NewString()
}
