package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/odemir/studentbook/internal/app/models"
	"github.com/odemir/studentbook/internal/app/models/dto"
	"github.com/odemir/studentbook/internal/app/workflow"
	"github.com/odemir/studentbook/internal/pkg/apperrors"
	"github.com/odemir/studentbook/internal/pkg/auth"
)

// SessionListener is notified of session transitions. The workflow gate
// implements it to bind and discard consoles.
type SessionListener interface {
	SessionChanged(ctx context.Context, ev workflow.SessionEvent)
}

// UserStore is the user persistence surface the auth service needs
type UserStore interface {
	CreateUnique(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}

// SessionStore is the session persistence surface the auth service needs
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

// AuthService defines authentication operations
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

type authService struct {
	users      UserStore
	sessions   SessionStore
	jwtService *auth.JWTService
	listener   SessionListener
	logger     zerolog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users UserStore,
	sessions SessionStore,
	jwtService *auth.JWTService,
	listener SessionListener,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		jwtService: jwtService,
		listener:   listener,
		logger:     logger,
	}
}

// Register creates a new staff account and signs it in immediately
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		RoleType: models.RoleStaff,
	}
	if err := s.users.CreateUnique(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Msg("User registered")
	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a new session
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to record last login")
	}

	return s.openSession(ctx, user)
}

// openSession creates the session row, issues the token and announces the
// sign-in so the workflow gate can bind a console
func (s *authService) openSession(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: s.jwtService.SessionExpiry(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	token, expiresIn, err := s.jwtService.GenerateSessionToken(user, session.ID)
	if err != nil {
		return nil, err
	}

	s.listener.SessionChanged(ctx, workflow.SessionEvent{
		Kind:      workflow.SignedIn,
		SessionID: session.ID,
		UserID:    user.ID,
		Email:     user.Email,
	})

	s.logger.Info().Str("email", user.Email).Str("session", session.ID).Msg("Session opened")

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Role:  string(user.RoleType),
		},
	}, nil
}

// Logout closes a session. The session row disappears first, then the gate
// is told so the console goes away with it.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.listener.SessionChanged(ctx, workflow.SessionEvent{
		Kind:      workflow.SignedOut,
		SessionID: sessionID,
	})

	s.logger.Info().Str("session", sessionID).Msg("Session closed")
	return nil
}

// CurrentUser returns the account behind a signed-in session
func (s *authService) CurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Role:  string(user.RoleType),
	}, nil
}
