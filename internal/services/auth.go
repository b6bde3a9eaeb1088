package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventhub/internal/domain"
)

// dummyPassword is hashed once so that logins for unknown emails still run a comparison.
const dummyPassword = "eventhub-dummy-password"

type authService struct {
	userRepo       domain.UserRepository
	hasher         domain.PasswordHasher
	tokens         domain.TokenIssuer
	emailService   domain.EmailService
	publisher      domain.ActivityPublisher
	logger         *slog.Logger
	contextTimeout time.Duration
	notifyTimeout  time.Duration
	dummyHash      string
	now            func() time.Time
}

// NewAuthService creates an AuthService. emailService and publisher receive best-effort
// notifications after sign-up, each bounded by its own short deadline; their failures
// are logged and never returned.
func NewAuthService(
	userRepo domain.UserRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	emailService domain.EmailService,
	publisher domain.ActivityPublisher,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AuthService {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		logger.Warn("could not prepare dummy password hash", "error", err)
	}
	return &authService{
		userRepo:       userRepo,
		hasher:         hasher,
		tokens:         tokens,
		emailService:   emailService,
		publisher:      publisher,
		logger:         logger,
		contextTimeout: timeout,
		notifyTimeout:  defaultNotifyTimeout,
		dummyHash:      dummyHash,
		now:            time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError(domain.MsgMissingFields)
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	repoCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.userRepo.GetByEmail(repoCtx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := domain.NewUser(email, hash, now, now)
	if err := s.userRepo.Create(repoCtx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.notifySignUp(ctx, user)
	return &domain.AuthResult{Token: token, User: user}, nil
}

func (s *authService) notifySignUp(ctx context.Context, user *domain.User) {
	if s.emailService != nil {
		emailCtx, cancel := notifyContext(ctx, s.notifyTimeout)
		if err := s.emailService.SendWelcome(emailCtx, user); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "error", err)
		}
		cancel()
	}
	if s.publisher != nil {
		a := domain.NewActivity(domain.ActivityUserRegistered, user.ID, user.CreatedAt)
		a.Email = user.Email
		pubCtx, cancel := notifyContext(ctx, s.notifyTimeout)
		if err := s.publisher.Publish(pubCtx, a); err != nil {
			s.logger.WarnContext(ctx, "publish activity failed", "type", a.Type, "error", err)
		}
		cancel()
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError(domain.MsgMissingFields)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			_, _ = s.hasher.Compare(s.dummyHash, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &domain.AuthResult{Token: token, User: user}, nil
}
