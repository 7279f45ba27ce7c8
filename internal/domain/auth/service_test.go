package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/id"
)

type fakeUserRepo struct {
	byEmail   map[string]*User
	updateErr error
	updated   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID id.ID) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user", userID.String())
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *fakeUserRepo) Update(_ context.Context, user *User) error {
	r.updated++
	if r.updateErr != nil {
		return r.updateErr
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID id.ID) error {
	for email, u := range r.byEmail {
		if u.ID == userID {
			delete(r.byEmail, email)
			return nil
		}
	}
	return apperror.NewNotFound("user", userID.String())
}

func (r *fakeUserRepo) List(_ context.Context, _ UserFilter) ([]User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(t *testing.T, repo *fakeUserRepo) *Service {
	t.Helper()
	jwtService := NewJWTService(DefaultJWTConfig("test-secret"))
	return NewService(repo, passthroughTxManager{}, jwtService, DefaultServiceConfig())
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := NewUser("Test User", email, string(hash), RoleStaff)
	repo.byEmail[email] = user
	return user
}

func TestSignIn_Success(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "staff@example.com", "correct-horse")
	svc := newTestService(t, repo)

	session, err := svc.SignIn(context.Background(), Credentials{
		Email:    "staff@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "Bearer", session.TokenType)
	assert.NotNil(t, session.User.LastLoginAt)
	assert.Equal(t, 1, repo.updated)
}

func TestSignIn_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "staff@example.com", "correct-horse")
	svc := newTestService(t, repo)

	_, err := svc.SignIn(context.Background(), Credentials{
		Email:    "staff@example.com",
		Password: "wrong",
	})
	assert.Error(t, err)
}

func TestSignIn_DisabledAccount(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "staff@example.com", "correct-horse")
	user.IsActive = false
	svc := newTestService(t, repo)

	_, err := svc.SignIn(context.Background(), Credentials{
		Email:    "staff@example.com",
		Password: "correct-horse",
	})
	assert.Error(t, err)
}

// The last-login stamp is best effort: a failed update must not fail
// the sign-in itself.
func TestSignIn_SucceedsWhenLoginStampFails(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "staff@example.com", "correct-horse")
	repo.updateErr = errors.New("connection reset")
	svc := newTestService(t, repo)

	session, err := svc.SignIn(context.Background(), Credentials{
		Email:    "staff@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, 1, repo.updated)
}
