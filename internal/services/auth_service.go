package services

import (
	"context"
	"crypto/md5"
	"fmt"
	"log"
	"strings"
	"time"

	"kontak/internal/cache"
	"kontak/internal/models"
	"kontak/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// emailTokenTTL is fixed regardless of the configured session token TTL.
const emailTokenTTL = 7 * 24 * time.Hour

// EmailPublisher schedules a confirmation email for background delivery.
// Satisfied by the rabbitmq client; mocked in tests.
type EmailPublisher interface {
	PublishEmailRequested(event map[string]interface{}) error
}

// AuthService handles business logic for authentication and authorization:
// password hashing, token issuance and validation, and resolving a bearer
// token back to a user record through the cache.
type AuthService struct {
	userRepo  repositories.UserRepository
	userCache *cache.UserCache
	mq        EmailPublisher
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. userCache and mq may be nil, in
// which case caching and confirmation emails are skipped.
func NewAuthService(userRepo repositories.UserRepository, userCache *cache.UserCache, mq EmailPublisher, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		userCache: userCache,
		mq:        mq,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// RegisterUser registers a new user: checks for duplicates (email first),
// hashes the password, assigns a Gravatar-based default avatar, persists the
// user unconfirmed and schedules the confirmation email.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("%w: %s", ErrEmailRegistered, user.Email)
	}
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, user.Username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	// Role and confirmation state are never taken from the request.
	user.Role = models.RoleUser
	user.Confirmed = false
	if user.Avatar == "" {
		user.Avatar = gravatarURL(user.Email)
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.scheduleConfirmationEmail(user)
	return nil
}

// LoginUser authenticates a user and returns a signed session token.
// Unknown usernames and wrong passwords produce the same error; a correct
// login against an unconfirmed email is rejected separately.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	if !user.Confirmed {
		return "", ErrEmailNotConfirmed
	}
	return s.IssueToken(user.Username)
}

// IssueToken mints a session token with the configured TTL. The subject
// claim carries the username.
func (s *AuthService) IssueToken(username string) (string, error) {
	return s.signToken(jwt.MapClaims{
		"sub": username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	})
}

// IssueEmailToken mints a single-purpose confirmation token with the email
// address as subject, valid for 7 days regardless of configuration.
func (s *AuthService) IssueEmailToken(email string) (string, error) {
	return s.signToken(jwt.MapClaims{
		"sub": email,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(emailTokenTTL).Unix(),
	})
}

func (s *AuthService) signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a signed token, returning its claims.
// Malformed, tampered and expired tokens all come back as ErrInvalidToken.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// ResolveUser resolves a bearer token to a full user record. The token is
// validated, its subject looked up in the cache and, on a miss, in the
// database; the cache is then populated. Every failure resolves to an
// authentication error, never a partial identity.
func (s *AuthService) ResolveUser(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return nil, ErrInvalidToken
	}

	if s.userCache != nil {
		if user, found := s.userCache.Get(ctx, username); found {
			return user, nil
		}
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}
	if s.userCache != nil {
		s.userCache.Set(ctx, user)
	}
	return user, nil
}

// EmailFromToken decodes a confirmation token back to the email it was
// issued for.
func (s *AuthService) EmailFromToken(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

// ConfirmEmail flips the confirmed flag for the user the token was issued
// to. The returned bool reports whether the email was already confirmed, so
// repeated confirmations stay idempotent.
func (s *AuthService) ConfirmEmail(tokenString string) (bool, error) {
	email, err := s.EmailFromToken(tokenString)
	if err != nil {
		return false, err
	}
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	if user.Confirmed {
		return true, nil
	}
	if err := s.userRepo.ConfirmEmail(email); err != nil {
		return false, fmt.Errorf("failed to confirm email: %w", err)
	}
	return false, nil
}

// RequestEmailConfirmation re-sends the confirmation email for an existing,
// unconfirmed account. The returned bool reports whether the email was
// already confirmed.
func (s *AuthService) RequestEmailConfirmation(email string) (bool, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	if user.Confirmed {
		return true, nil
	}
	s.scheduleConfirmationEmail(user)
	return false, nil
}

// scheduleConfirmationEmail publishes a confirmation email event. Delivery
// is fire-and-forget: a publish failure is logged and never fails the
// request that triggered it.
func (s *AuthService) scheduleConfirmationEmail(user *models.User) {
	if s.mq == nil {
		log.Println("Email publisher is not initialized. Skipping confirmation email.")
		return
	}
	token, err := s.IssueEmailToken(user.Email)
	if err != nil {
		log.Printf("Warning: Failed to issue confirmation token for %s: %v", user.Email, err)
		return
	}
	event := map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
		"token":    token,
	}
	if err := s.mq.PublishEmailRequested(event); err != nil {
		log.Printf("Warning: Failed to publish confirmation email event for %s: %v", user.Email, err)
	}
}

// gravatarURL derives the default avatar for an email address.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", sum)
}
