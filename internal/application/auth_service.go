package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StudioSpot/service-booking/internal/auth"
	"github.com/StudioSpot/service-booking/internal/domain"
	userDomain "github.com/StudioSpot/service-booking/internal/domain/user"
	"github.com/StudioSpot/service-booking/internal/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest holds the data needed to create an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the raw refresh token being exchanged or revoked.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserDTO is the response representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResultDTO is returned from register, login and refresh.
type AuthResultDTO struct {
	User   UserDTO        `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

// AuthService handles registration, login and the refresh-token session
// lifecycle.
type AuthService struct {
	users    userDomain.Repository
	jwt      *auth.JWTManager
	sessions *session.Store
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.Repository, jwt *auth.JWTManager, sessions *session.Store, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwt:      jwt,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates a musician or owner account and opens a session.
// Admin accounts are provisioned out of band, never self-registered.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResultDTO, error) {
	role := userDomain.Role(req.Role)
	if req.Role == "" {
		role = userDomain.RoleMusician
	}
	if role != userDomain.RoleMusician && role != userDomain.RoleOwner {
		return nil, domain.NewValidationError("role must be musician or owner")
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	if existing != nil {
		return nil, domain.NewConflictError("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := userDomain.NewUser(req.Email, string(hash), req.Name, role)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", string(u.Role())),
	)

	return s.openSession(ctx, u)
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResultDTO, error) {
	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	return s.openSession(ctx, u)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The old
// session is cleared so each refresh token is single-use.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*AuthResultDTO, error) {
	sess, err := s.sessions.Load(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Clear(ctx, rawToken); err != nil {
		return nil, err
	}

	return s.openSession(ctx, u)
}

// Logout clears the session behind the refresh token. Access tokens simply
// expire.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	return s.sessions.Clear(ctx, rawToken)
}

func (s *AuthService) openSession(ctx context.Context, u *userDomain.User) (*AuthResultDTO, error) {
	pair, err := s.jwt.GeneratePair(u.ID(), string(u.Role()))
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	sess := session.Session{UserID: u.ID(), Role: string(u.Role())}
	if err := s.sessions.Save(ctx, pair.RefreshToken, sess, s.jwt.RefreshTTL()); err != nil {
		return nil, err
	}

	return &AuthResultDTO{
		User: UserDTO{
			ID:        u.ID(),
			Email:     u.Email(),
			Name:      u.Name(),
			Role:      string(u.Role()),
			CreatedAt: u.CreatedAt(),
		},
		Tokens: *pair,
	}, nil
}
