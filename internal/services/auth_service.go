package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"blogapi/internal/apperrors"
	"blogapi/internal/models"
	"blogapi/internal/repositories"
	"blogapi/pkg/events"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// TokenClaims is the identity a validated token asserts. Only the subject is
// trusted downstream; the role is re-read from storage on every request.
type TokenClaims struct {
	Subject string
	Role    string
}

// AuthService handles registration, login, token issuance and validation.
type AuthService struct {
	userRepo  repositories.UserRepository
	mqClient  *events.Client
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService. The secret and clock are injected
// so tests can supply deterministic values; a nil now defaults to time.Now.
func NewAuthService(userRepo repositories.UserRepository, mqClient *events.Client, jwtSecret string, tokenTTL time.Duration, now func() time.Time) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		userRepo:  userRepo,
		mqClient:  mqClient,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       now,
	}
}

// Register creates a new user account and returns a token for it.
// The email-exists check runs before any hashing or persistence.
func (s *AuthService) Register(user *models.User) (string, error) {
	exists, err := s.userRepo.ExistsByEmail(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return "", fmt.Errorf("email %s already registered: %w", user.Email, apperrors.ErrConflict)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Role = models.RoleUser
	user.CreatedAt = s.now()

	if err := s.userRepo.Create(user); err != nil {
		return "", fmt.Errorf("failed to register user: %w", err)
	}

	if s.mqClient != nil {
		payload := map[string]interface{}{"user_id": user.ID, "email": user.Email}
		if err := s.mqClient.Publish(events.UserRegistered, payload); err != nil {
			log.Printf("Warning: failed to publish user registered event for %d: %v", user.ID, err)
		}
	}

	return s.issueToken(user)
}

// Login verifies the credentials and returns a signed token. Lookup and
// password failures collapse into the same unauthorized error so callers
// cannot probe which emails exist.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	return s.issueToken(user)
}

// ValidateToken parses and verifies a token, returning its claims.
// A bad signature or structure yields ErrTokenMalformed, a past expiry
// ErrTokenExpired.
func (s *AuthService) ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, fmt.Errorf("%w", apperrors.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrTokenMalformed)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w", apperrors.ErrTokenMalformed)
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, fmt.Errorf("missing subject: %w", apperrors.ErrTokenMalformed)
	}
	role, _ := claims["role"].(string)

	return &TokenClaims{Subject: subject, Role: role}, nil
}

// ResolveSubject turns a token subject into a fresh principal by re-reading
// the user from storage. Role changes therefore take effect on the next
// request without any revocation machinery.
func (s *AuthService) ResolveSubject(email string) (*models.Principal, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	return &models.Principal{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// issueToken signs an HS256 token with subject, role, issued-at and expiry.
func (s *AuthService) issueToken(user *models.User) (string, error) {
	issuedAt := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.Email,
		"role": user.Role,
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}
