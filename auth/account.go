package auth

import (
	"context"

	"github.com/rpupo63/blog-auth-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Session is returned by signup and login.
type Session struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

// WelcomeNotifier is told about every new account. Implementations must not block.
type WelcomeNotifier interface {
	SendWelcomeEmail(user models.User)
}

// AccountService orchestrates signup and login.
type AccountService struct {
	credentials *CredentialStore
	tokens      *TokenService
	notifier    WelcomeNotifier
	logger      zerolog.Logger
}

type AccountOption func(*AccountService)

func WithWelcomeNotifier(n WelcomeNotifier) AccountOption {
	return func(s *AccountService) {
		s.notifier = n
	}
}

func NewAccountService(credentials *CredentialStore, tokens *TokenService, opts ...AccountOption) *AccountService {
	s := &AccountService{
		credentials: credentials,
		tokens:      tokens,
		logger:      log.With().Str("service", "account").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup creates the account and returns its public view with a fresh token
func (s *AccountService) Signup(ctx context.Context, username, email, password string) (Session, error) {
	user, err := s.credentials.Register(ctx, username, email, password)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Str("username", username).Msg("signup rejected")
		return Session{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}

	s.logger.Info().Str("userID", user.ID.String()).Msg("user created")
	if s.notifier != nil {
		s.notifier.SendWelcomeEmail(*user)
	}

	return Session{User: user.Public(), Token: token}, nil
}

// Login checks the credentials and returns the public view with a fresh token
func (s *AccountService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.credentials.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("login rejected")
		return Session{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user.Public(), Token: token}, nil
}
