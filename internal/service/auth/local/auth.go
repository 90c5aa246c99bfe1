package service_local_auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Token = string

var (
	ErrInternal           = errors.New("internal error")
	ErrEmptyCredentials   = errors.New("email and password can't be empty")
	ErrAccountExists      = errors.New("account already exists")
	ErrNoAccount          = errors.New("no account found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
)

const defaultSessionTTL = 24 * time.Hour

type CredentialStore interface {
	SetNX(key string, value string, ttl time.Duration) (bool, error)
	Get(key string) (string, error)
}

type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
}

// Service keeps email/password accounts and bearer sessions.
type Service struct {
	credentials  CredentialStore
	sessionCache SessionCache
	ttl          time.Duration
	cost         int
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithHashCost is for tests; production uses bcrypt.DefaultCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

func New(
	credentials CredentialStore,
	sessionCache SessionCache,
	opts ...Option,
) *Service {
	s := &Service{
		credentials:  credentials,
		sessionCache: sessionCache,
		ttl:          defaultSessionTTL,
		cost:         bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) SignUp(email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}

	created, err := s.credentials.SetNX(email, string(hash), 0)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if !created {
		return ErrAccountExists
	}

	return nil
}

func (s *Service) Login(email, password string) (Token, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrEmptyCredentials
	}

	hash, err := s.credentials.Get(email)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	if hash == "" {
		return "", ErrNoAccount
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	t := s.genToken()
	if err := s.sessionCache.Set(t, email, s.ttl); err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	return t, nil
}

func (s *Service) IsValid(t Token) (bool, error) {
	if t == "" {
		return false, nil
	}
	v, err := s.sessionCache.Get(t)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}

	return v != "", nil
}

// Account returns the email the session was opened for.
func (s *Service) Account(t Token) (string, error) {
	if t == "" {
		return "", ErrNoSession
	}
	email, err := s.sessionCache.Get(t)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	if email == "" {
		return "", ErrNoSession
	}

	return email, nil
}

func (s *Service) Logout(t Token) error {
	if t == "" {
		return nil
	}
	if err := s.sessionCache.Delete(t); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (s *Service) genToken() string {
	return uuid.New().String()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
