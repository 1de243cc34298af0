package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	domain "storyhub/backend/internal/domain/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *memRepo) *Service {
	return NewService(repo, &stubTokens{}, plainHasher{})
}

func TestRegister(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "Alice ",
		Email:    "alice@example.com",
		FullName: "Alice A",
		Password: "secret2",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.Disabled)
	assert.Empty(t, user.PasswordHash, "returned user must not carry the hash")

	stored, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "hashed:secret2", stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "bob"})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret2"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegisterConcurrentSameUsername(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), RegisterInput{Username: "bob", Password: "secret2"})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrUsernameTaken):
			dup++
		}
	}
	assert.Equal(t, 1, ok, "exactly one registration must win")
	assert.Equal(t, attempts-1, dup)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret2"})
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), domain.Credentials{Username: "alice", Password: "secret2"})
	require.NoError(t, err)
	assert.Equal(t, "tok:alice", token)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret2"})
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(context.Background(), domain.Credentials{Username: "alice", Password: "wrong"})
	_, _, unknownUser := svc.Login(context.Background(), domain.Credentials{Username: "nobody", Password: "secret2"})

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestLoginEmptyCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())

	_, _, err := svc.Login(context.Background(), domain.Credentials{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret2"})
	require.NoError(t, err)

	email := "new@example.com"
	password := "rotated"
	updated, err := svc.UpdateProfile(context.Background(), "alice", UpdateInput{
		Email:    &email,
		Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username)
	assert.Empty(t, updated.PasswordHash)

	stored, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "hashed:rotated", stored.PasswordHash)
}

func TestUpdateProfileEmptyPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret2"})
	require.NoError(t, err)

	empty := "  "
	_, err = svc.UpdateProfile(context.Background(), "alice", UpdateInput{Password: &empty})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret2"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "alice"))

	_, err = repo.GetByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListSanitizes(t *testing.T) {
	t.Parallel()

	svc := newTestService(newMemRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret2"})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), RegisterInput{Username: "bob", Password: "secret3"})
	require.NoError(t, err)

	users, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, user := range users {
		assert.Empty(t, user.PasswordHash)
	}
}
