package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricsmart/internal/domain/entity"
	"agricsmart/pkg/errors"
)

type fakeAuthClient struct {
	nextUID      string
	signInToken  string
	signInErr    error
	createErr    error
	deletedUIDs  []string
	passwordsSet map[string]string
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{
		nextUID:      "uid-1",
		signInToken:  "token-1",
		passwordsSet: make(map[string]string),
	}
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.nextUID, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	if token != f.signInToken {
		return "", fmt.Errorf("unknown token")
	}
	return f.nextUID, nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	if f.signInErr != nil {
		return "", f.signInErr
	}
	return f.signInToken, nil
}

func (f *fakeAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	f.passwordsSet[uid] = newPassword
	return nil
}

func (f *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	f.deletedUIDs = append(f.deletedUIDs, uid)
	return nil
}

func TestRegisterDefaultsToBuyerRole(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := NewAuthUseCase(userRepo, newFakeAuthClient())

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:    "ama@example.com",
		Password: "secret123",
		Username: "ama",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleBuyer, result.User.Role)
	assert.Equal(t, "active", result.User.Status)
	assert.Equal(t, "token-1", result.Token)
	assert.Equal(t, "uid-1", result.User.ID)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), newFakeAuthClient())

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "ama@example.com",
		Password: "secret123",
		Role:     entity.RoleAdmin,
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "existing", Email: "ama@example.com"})
	uc := NewAuthUseCase(userRepo, newFakeAuthClient())

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "ama@example.com",
		Password: "secret123",
	})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRegisterCleansUpAuthAccountOnProfileFailure(t *testing.T) {
	authClient := newFakeAuthClient()
	uc := NewAuthUseCase(failingUserRepo{}, authClient)

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "ama@example.com",
		Password: "secret123",
	})

	require.Error(t, err)
	assert.Equal(t, []string{"uid-1"}, authClient.deletedUIDs)
}

func TestLoginRejectsSuspendedAccount(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "uid-1", Email: "ama@example.com", Status: "suspended"})
	uc := NewAuthUseCase(userRepo, newFakeAuthClient())

	_, err := uc.Login(context.Background(), "ama@example.com", "secret123")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	authClient := newFakeAuthClient()
	authClient.signInErr = fmt.Errorf("invalid password")
	uc := NewAuthUseCase(newFakeUserRepo(), authClient)

	_, err := uc.Login(context.Background(), "ama@example.com", "wrong")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "uid-1", Email: "ama@example.com", Status: "active"})
	authClient := newFakeAuthClient()
	uc := NewAuthUseCase(userRepo, authClient)

	err := uc.ChangePassword(context.Background(), "uid-1", "old-secret", "new-secret")
	require.NoError(t, err)
	assert.Equal(t, "new-secret", authClient.passwordsSet["uid-1"])

	authClient.signInErr = fmt.Errorf("invalid password")
	err = uc.ChangePassword(context.Background(), "uid-1", "wrong", "new-secret")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

// failingUserRepo rejects profile creation, simulating a Firestore outage
// between the auth-account and profile writes.
type failingUserRepo struct{}

func (failingUserRepo) Create(ctx context.Context, user *entity.User) error {
	return fmt.Errorf("firestore unavailable")
}

func (failingUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return nil, errors.NotFound("User", nil)
}

func (failingUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.NotFound("User", nil)
}

func (failingUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (failingUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	return nil, 0, nil
}
