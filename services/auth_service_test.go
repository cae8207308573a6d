package services_test

import (
	"context"
	"testing"

	"github.com/heavymachinery/backend/models"
	"github.com/heavymachinery/backend/repository"
	"github.com/heavymachinery/backend/services"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) find(match func(*models.User) bool) (*models.User, error) {
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Email == email })
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.Username == username })
}

func (f *fakeUserStore) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.PhoneNumber == phone })
}

func (f *fakeUserStore) FindByPasswordHash(_ context.Context, hash string) (*models.User, error) {
	return f.find(func(u *models.User) bool { return u.HashedPassword == hash })
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	f.users = append(f.users, user)
	return nil
}

func registerRequest() *services.RegisterRequest {
	return &services.RegisterRequest{
		Email:       "buyer@example.com",
		Username:    "buyer",
		PhoneNumber: "+966500000001",
		Password:    "s3cret-pass",
	}
}

func TestRegister_Success(t *testing.T) {
	store := &fakeUserStore{}
	svc := services.NewAuthService(store, services.NewTokenService("test-secret"))

	user, svcErr := svc.Register(context.Background(), registerRequest())

	assert.Nil(t, svcErr)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.False(t, user.Subscription)
	assert.Empty(t, user.PurchaseHistory)
	assert.Empty(t, user.Cart)
	assert.Len(t, store.users, 1)

	// The stored password is a bcrypt hash of the plaintext.
	err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("s3cret-pass"))
	assert.NoError(t, err)
}

func TestRegister_DuplicateFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*services.RegisterRequest)
		message string
	}{
		{"username", func(r *services.RegisterRequest) {
			r.Email = "other@example.com"
			r.PhoneNumber = "+966500000002"
		}, "Username already registered"},
		{"email", func(r *services.RegisterRequest) {
			r.Username = "other"
			r.PhoneNumber = "+966500000002"
		}, "Email already registered"},
		{"phone", func(r *services.RegisterRequest) {
			r.Username = "other"
			r.Email = "other@example.com"
		}, "Phone number already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{}
			svc := services.NewAuthService(store, services.NewTokenService("test-secret"))

			_, svcErr := svc.Register(context.Background(), registerRequest())
			assert.Nil(t, svcErr)

			req := registerRequest()
			tt.mutate(req)
			_, svcErr = svc.Register(context.Background(), req)
			assert.NotNil(t, svcErr)
			assert.Equal(t, 400, svcErr.StatusCode)
			assert.Equal(t, tt.message, svcErr.Message)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	store := &fakeUserStore{}
	tokens := services.NewTokenService("test-secret")
	svc := services.NewAuthService(store, tokens)

	_, svcErr := svc.Register(context.Background(), registerRequest())
	assert.Nil(t, svcErr)

	token, user, svcErr := svc.Login(context.Background(), &services.LoginRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-pass",
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, "buyer", user.Username)

	claims, err := tokens.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims["sub"])
	assert.Equal(t, "buyer", claims["username"])
	assert.Equal(t, false, claims["admin"])
}

func TestLogin_WrongPassword(t *testing.T) {
	store := &fakeUserStore{}
	svc := services.NewAuthService(store, services.NewTokenService("test-secret"))

	_, svcErr := svc.Register(context.Background(), registerRequest())
	assert.Nil(t, svcErr)

	_, _, svcErr = svc.Login(context.Background(), &services.LoginRequest{
		Email:    "buyer@example.com",
		Password: "wrong",
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
	assert.Equal(t, "Invalid email or password", svcErr.Message)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := services.NewAuthService(&fakeUserStore{}, services.NewTokenService("test-secret"))

	_, _, svcErr := svc.Login(context.Background(), &services.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
	assert.Equal(t, "Invalid email or password", svcErr.Message)
}
