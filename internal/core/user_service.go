package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"dsb-backend-go/internal/crypto"
	"dsb-backend-go/internal/db"
	"dsb-backend-go/internal/models"
	"dsb-backend-go/pkg/mailer"
)

const welcomeMailTimeout = 30 * time.Second

// userService implements the UserService interface.
type userService struct {
	userRepo db.UserRepository
	mailer   mailer.Mailer
	events   EventPublisher
	logger   *zap.Logger

	// registerMu makes the uniqueness check and the insert one step for
	// registrations handled by this process.
	registerMu sync.Mutex
}

// NewUserService creates a new UserService instance. mail and events may be nil.
func NewUserService(userRepo db.UserRepository, mail mailer.Mailer, events EventPublisher, logger *zap.Logger) UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userService{userRepo: userRepo, mailer: mail, events: events, logger: logger}
}

func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username, password and email are required", ErrInvalidInput)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.registerMu.Lock()
	defer s.registerMu.Unlock()

	if err := s.ensureAvailable(ctx, email, username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.CreateUser(ctx, models.NewUser{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		Company:      req.Company,
		Industry:     req.Industry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log := s.logger.With(zap.String("userId", user.ID))
	log.Info("User registered")
	publishEvent(ctx, s.events, log, EventUserRegistered, map[string]interface{}{
		"userId":   user.ID,
		"username": user.Username,
		"industry": user.Industry,
	})
	s.sendWelcome(ctx, log, user)
	return user, nil
}

func (s *userService) ensureAvailable(ctx context.Context, email, username string) error {
	_, err := s.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("failed to check email: %w", err)
	}

	_, err = s.userRepo.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, db.ErrNotFound):
		return fmt.Errorf("failed to check username: %w", err)
	}
	return nil
}

// sendWelcome mails the new user in the background. Delivery problems are
// logged only; registration has already succeeded.
func (s *userService) sendWelcome(ctx context.Context, log *zap.Logger, user *models.User) {
	if s.mailer == nil {
		return
	}
	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), welcomeMailTimeout)
	go func() {
		defer cancel()
		body := fmt.Sprintf("<p>Hi %s,</p><p>Your DSB account is ready. Submit a manufacturing problem to get your first analysis.</p>", user.Username)
		if err := s.mailer.Send(mailCtx, user.Email, "Welcome to DSB", body); err != nil {
			log.Warn("Failed to send welcome email", zap.Error(err))
		}
	}()
}
