package auth_test

import (
	"context"
	"testing"
	"time"

	"aura/backend/internal/auth"
	"aura/backend/internal/storage"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newService() (*auth.Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return auth.NewService(store, store, secret, time.Hour, nil), store
}

func validRegistration() auth.RegisterInput {
	return auth.RegisterInput{Email: "Asha@Example.com ", Phone: "9876543210", Password: "secret1"}
}

func TestRegister_LogsIn(t *testing.T) {
	// Arrange
	svc, _ := newService()
	ctx := context.Background()

	// Act
	res, err := svc.Register(ctx, validRegistration())

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "asha@example.com", res.Session.Email)
	assert.False(t, res.Session.IsAdmin)

	session, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.Session, *session)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*auth.RegisterInput)
		field string
		tag   string
	}{
		{"bad email", func(in *auth.RegisterInput) { in.Email = "not-an-email" }, "email", "email"},
		{"short phone", func(in *auth.RegisterInput) { in.Phone = "12345" }, "phone", "phone10"},
		{"letters in phone", func(in *auth.RegisterInput) { in.Phone = "98765abcde" }, "phone", "phone10"},
		{"short password", func(in *auth.RegisterInput) { in.Password = "abc" }, "password", "min"},
		{"missing password", func(in *auth.RegisterInput) { in.Password = "" }, "password", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService()
			in := validRegistration()
			tt.mut(&in)

			_, err := svc.Register(context.Background(), in)

			require.ErrorIs(t, err, auth.ErrValidation)
			var verr *auth.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.tag, verr.Tag)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	in := validRegistration()
	in.Email = "ASHA@example.com"
	_, err = svc.Register(ctx, in)

	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	admin := validRegistration()
	admin.Email = "admin@example.com"
	admin.IsAdmin = true
	_, err := svc.Register(ctx, admin)
	require.NoError(t, err)

	tests := []struct {
		name    string
		in      auth.LoginInput
		wantErr error
	}{
		{"admin ok", auth.LoginInput{Email: "admin@example.com", Password: "secret1", IsAdmin: true}, nil},
		{"case-insensitive email", auth.LoginInput{Email: "ADMIN@example.com", Password: "secret1", IsAdmin: true}, nil},
		{"wrong password", auth.LoginInput{Email: "admin@example.com", Password: "nope", IsAdmin: true}, auth.ErrInvalidCredentials},
		{"wrong account type", auth.LoginInput{Email: "admin@example.com", Password: "secret1"}, auth.ErrInvalidCredentials},
		{"unknown user", auth.LoginInput{Email: "ghost@example.com", Password: "secret1"}, auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, res.Session.IsAdmin)
		})
	}
}

func TestLogout_InvalidatesToken(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	res, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.Session.ID))

	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthenticate_RejectsForeignTokens(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	res, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: res.Session.ID, Issuer: "aura-rentals"})
	forgedToken, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	otherIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: res.Session.ID, Issuer: "someone-else"})
	otherIssuerToken, err := otherIssuer.SignedString([]byte(secret))
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", forgedToken, otherIssuerToken} {
		_, err := svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	}
}

func TestPhoneValidation(t *testing.T) {
	v := auth.GetValidator()

	assert.NoError(t, v.Var("9876543210", "phone10"))
	assert.Error(t, v.Var("+919876543210", "phone10"))
	assert.Error(t, v.Var("987654321", "phone10"))
}
