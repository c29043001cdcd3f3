package services

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devfolio/devfolio-api/internal/jwt"
	"github.com/devfolio/devfolio-api/internal/models"
)

var (
	// ErrAllFieldsRequired is returned when a required field is missing.
	ErrAllFieldsRequired = errors.New("all fields are required")

	// ErrInvalidEmail is returned when the email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrRegistrationClosed is returned once the two-user cap is reached.
	ErrRegistrationClosed = errors.New("registration limit reached")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidCredentials is returned on a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when the token's user no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[a-zA-Z]{2,}$`)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.UserDB, error)
	Count(ctx context.Context) (int64, error)
}

// UserWriter defines write operations for users. Save returns nil when the
// registration cap blocked the insert.
type UserWriter interface {
	Save(ctx context.Context, name, email, passwordHash string) (*models.UserDB, error)
}

// TokenIssuer issues signed identity tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID uuid.UUID, name string) (string, error)
}

// TokenVerifier verifies tokens and returns their claims.
type TokenVerifier interface {
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthService handles registration, login and session verification.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	issuer   TokenIssuer
	verifier TokenVerifier
	log      *zap.SugaredLogger
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, issuer TokenIssuer, verifier TokenVerifier, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		issuer:   issuer,
		verifier: verifier,
		log:      log,
	}
}

// Register creates a user and issues a token. At most two users may ever
// exist: the cap is checked up front, so a third attempt fails with
// ErrRegistrationClosed regardless of field validity, and enforced again
// atomically inside the insert.
func (svc *AuthService) Register(ctx context.Context, name, email, password string) (*models.UserDB, string, error) {
	count, err := svc.reader.Count(ctx)
	if err != nil {
		svc.log.Errorw("failed to count users", "err", err)
		return nil, "", err
	}
	if count >= 2 {
		svc.log.Warnw("registration limit reached", "count", count)
		return nil, "", ErrRegistrationClosed
	}

	if name == "" || email == "" || password == "" {
		return nil, "", ErrAllFieldsRequired
	}
	if !emailPattern.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		svc.log.Errorw("failed to check user exists", "err", err)
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		svc.log.Errorw("failed to hash password", "err", err)
		return nil, "", err
	}

	user, err := svc.writer.Save(ctx, name, email, string(hashedPassword))
	if err != nil {
		svc.log.Errorw("failed to save user", "err", err)
		return nil, "", err
	}
	if user == nil {
		// A concurrent registration won the race for the last slot.
		return nil, "", ErrRegistrationClosed
	}

	token, err := svc.issuer.Generate(ctx, user.ID, user.Name)
	if err != nil {
		svc.log.Errorw("failed to generate token", "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// Login authenticates a user and issues a token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.UserDB, string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		svc.log.Errorw("failed to get user", "err", err)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		svc.log.Warnw("invalid credentials", "email", email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := svc.issuer.Generate(ctx, user.ID, user.Name)
	if err != nil {
		svc.log.Errorw("failed to generate token", "err", err)
		return nil, "", err
	}

	return user, token, nil
}

// Verify validates a session token and confirms its user still exists.
func (svc *AuthService) Verify(ctx context.Context, tokenString string) (*models.UserDB, error) {
	ident, err := svc.verifier.GetClaims(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	user, err := svc.reader.GetByID(ctx, ident.UserID)
	if err != nil {
		svc.log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
