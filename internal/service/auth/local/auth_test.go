package service_local_auth

import (
	"errors"
	"testing"
	"time"

	infra_memory_kv "github.com/humanbelnik/watchnext/internal/infra/memory/kv"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type LocalAuthUnitSuite struct {
	suite.Suite
}

type resources struct {
	service  *Service
	sessions *infra_memory_kv.Store
}

func initResources() *resources {
	sessions := infra_memory_kv.New()
	return &resources{
		service:  New(infra_memory_kv.New(), sessions, WithHashCost(bcrypt.MinCost), WithSessionTTL(time.Hour)),
		sessions: sessions,
	}
}

func validEmail() string {
	return "alice@example.com"
}

func validPassword() string {
	return "hunter2"
}

func (s *LocalAuthUnitSuite) TestSignUp(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		prepare       func(svc *Service)
		email         string
		password      string
		expectedError error
	}{
		{
			name:     "Should create account",
			email:    validEmail(),
			password: validPassword(),
		},
		{
			name:          "Should reject empty email",
			email:         "  ",
			password:      validPassword(),
			expectedError: ErrEmptyCredentials,
		},
		{
			name:          "Should reject empty password",
			email:         validEmail(),
			expectedError: ErrEmptyCredentials,
		},
		{
			name: "Should reject existing email",
			prepare: func(svc *Service) {
				_ = svc.SignUp(validEmail(), "first")
			},
			email:         "Alice@Example.com",
			password:      "second",
			expectedError: ErrAccountExists,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources()
			if tc.prepare != nil {
				tc.prepare(r.service)
			}

			err := r.service.SignUp(tc.email, tc.password)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func (s *LocalAuthUnitSuite) TestLogin(t provider.T) {
	t.Parallel()

	t.Run("Should issue session token", func(t provider.T) {
		r := initResources()
		assert.NoError(t, r.service.SignUp(validEmail(), validPassword()))

		token, err := r.service.Login(" ALICE@example.com ", validPassword())

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		owner, _ := r.sessions.Get(token)
		assert.Equal(t, validEmail(), owner)
	})

	t.Run("Should report unknown account", func(t provider.T) {
		r := initResources()

		_, err := r.service.Login(validEmail(), validPassword())

		assert.ErrorIs(t, err, ErrNoAccount)
	})

	t.Run("Should reject wrong password", func(t provider.T) {
		r := initResources()
		_ = r.service.SignUp(validEmail(), validPassword())

		token, err := r.service.Login(validEmail(), "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("Should reject empty input", func(t provider.T) {
		r := initResources()

		_, err := r.service.Login("", "")

		assert.ErrorIs(t, err, ErrEmptyCredentials)
	})
}

func (s *LocalAuthUnitSuite) TestAccount(t provider.T) {
	r := initResources()
	_ = r.service.SignUp(validEmail(), validPassword())
	token, _ := r.service.Login("  Alice@Example.com ", validPassword())

	email, err := r.service.Account(token)
	assert.NoError(t, err)
	assert.Equal(t, validEmail(), email)

	_, err = r.service.Account("")
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = r.service.Account("forged")
	assert.ErrorIs(t, err, ErrNoSession)

	_ = r.service.Logout(token)
	_, err = r.service.Account(token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func (s *LocalAuthUnitSuite) TestSession(t provider.T) {
	r := initResources()
	_ = r.service.SignUp(validEmail(), validPassword())
	token, _ := r.service.Login(validEmail(), validPassword())

	valid, err := r.service.IsValid(token)
	assert.NoError(t, err)
	assert.True(t, valid)

	valid, _ = r.service.IsValid("forged")
	assert.False(t, valid)

	assert.NoError(t, r.service.Logout(token))
	valid, _ = r.service.IsValid(token)
	assert.False(t, valid)
}

type failingKV struct{}

func (failingKV) SetNX(string, string, time.Duration) (bool, error) { return false, errors.New("down") }
func (failingKV) Set(string, string, time.Duration) error            { return errors.New("down") }
func (failingKV) Get(string) (string, error)                         { return "", errors.New("down") }
func (failingKV) Delete(string) error                                { return errors.New("down") }

func (s *LocalAuthUnitSuite) TestStoreFailures(t provider.T) {
	svc := New(failingKV{}, failingKV{}, WithHashCost(bcrypt.MinCost))

	assert.ErrorIs(t, svc.SignUp(validEmail(), validPassword()), ErrInternal)
	_, err := svc.Login(validEmail(), validPassword())
	assert.ErrorIs(t, err, ErrInternal)
	_, err = svc.IsValid("token")
	assert.ErrorIs(t, err, ErrInternal)
	_, err = svc.Account("token")
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, svc.Logout("token"), ErrInternal)
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(LocalAuthUnitSuite))
}
