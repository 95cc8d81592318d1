package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phoneshop-api/internal/common"
)

type fakeStore struct {
	users map[string]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*User{}}
}

func (f *fakeStore) Create(ctx context.Context, user *User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return ErrUsernameTaken
		}
	}
	user.CreatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeStore) UpdatePassword(ctx context.Context, id, password string) error {
	u, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Password = password
	return nil
}

func newTestService(store Store) *Service {
	return NewService(Config{
		Store:  store,
		Secret: "test-secret-test-secret-test-secret!",
		Logger: zerolog.Nop(),
	})
}

func seedUser(t *testing.T, store *fakeStore, username, password string, hashed bool) *User {
	t.Helper()
	stored := password
	if hashed {
		hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
		require.NoError(t, err)
		stored = hash
	}
	user := &User{ID: "4dfe08e9-17a5-4a06-90df-0b0a2ad08a39", Username: username, Password: stored}
	require.NoError(t, store.Create(context.Background(), user))
	return user
}

func TestLoginIssuesToken(t *testing.T) {
	store := newFakeStore()
	user := seedUser(t, store, "sara", "s3cret99", true)
	svc := newTestService(store)

	result, err := svc.Login(context.Background(), "sara", "s3cret99")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Empty(t, result.User.Password)

	subject, err := svc.ParseAccessToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "sara", "s3cret99", true)
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Login(ctx, "sara", "wrong")
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeUnauthorized, appErr.Code)

	_, err = svc.Login(ctx, "nobody", "s3cret99")
	appErr, ok = common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeUnauthorized, appErr.Code)
}

func TestLoginUpgradesLegacyPassword(t *testing.T) {
	store := newFakeStore()
	user := seedUser(t, store, "legacy", "oldpass1", false)
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Login(ctx, "legacy", "oldpass1")
	require.NoError(t, err)

	stored := store.users[user.ID].Password
	assert.True(t, strings.HasPrefix(stored, "$argon2id$"), "password should be rehashed, got %q", stored)

	// The upgraded hash must still verify.
	_, err = svc.Login(ctx, "legacy", "oldpass1")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "legacy", "oldpass2")
	require.Error(t, err)
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	store := newFakeStore()
	seedUser(t, store, "sara", "s3cret99", true)
	svc := newTestService(store)

	past := time.Now().Add(-48 * time.Hour)
	svc.WithNow(func() time.Time { return past })
	result, err := svc.Login(context.Background(), "sara", "s3cret99")
	require.NoError(t, err)

	svc.WithNow(time.Now)
	_, err = svc.ParseAccessToken(result.Token)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeUnauthorized, appErr.Code)
}

func TestParseAccessTokenPinsAlgorithm(t *testing.T) {
	svc := newTestService(newFakeStore())

	tok, err := jwt.NewBuilder().
		Subject("someone").
		Issuer(defaultIssuer).
		IssuedAt(time.Now()).
		Expiration(time.Now().Add(time.Hour)).
		Build()
	require.NoError(t, err)
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS512, []byte("test-secret-test-secret-test-secret!")))
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(string(signed))
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeUnauthorized, appErr.Code)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestService(newFakeStore())

	for _, token := range []string{"", "   ", "not-a-token", "a.b.c"} {
		_, err := svc.ParseAccessToken(token)
		require.Error(t, err, "token %q", token)
	}
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx))
	require.Len(t, store.users, 1)

	admin, err := store.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, strings.HasPrefix(admin.Password, "$argon2id$"))

	require.NoError(t, svc.SeedAdmin(ctx))
	assert.Len(t, store.users, 1)

	_, err = svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
}

func TestRegister(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, "clerk", "pass123", false)
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	assert.Empty(t, user.Password)

	_, err = svc.Register(ctx, "clerk", "pass456", false)
	appErr, ok := common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeConflict, appErr.Code)

	_, err = svc.Register(ctx, "x", "123", false)
	appErr, ok = common.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, common.CodeValidation, appErr.Code)
}

func TestIsAdmin(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx))
	admin, err := store.GetByUsername(ctx, "admin")
	require.NoError(t, err)

	ok, err := svc.IsAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAdmin(ctx, "missing-id")
	require.NoError(t, err)
	assert.False(t, ok)
}
