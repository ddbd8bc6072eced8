package usecase

import (
	"errors"
	"testing"

	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// stubUserRepo keeps users and sessions in maps.
type stubUserRepo struct {
	usersByEmail map[string]*domain.User
	usersByID    map[string]*domain.User
	sessions     map[string]*domain.Session
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		usersByEmail: map[string]*domain.User{},
		usersByID:    map[string]*domain.User{},
		sessions:     map[string]*domain.Session{},
	}
}

func (r *stubUserRepo) CreateUser(user *domain.User) (*domain.User, error) {
	if _, exists := r.usersByEmail[user.Email]; exists {
		return nil, errors.New("user with this email already exists")
	}
	saved := *user
	r.usersByEmail[saved.Email] = &saved
	r.usersByID[saved.ID] = &saved
	return &saved, nil
}

func (r *stubUserRepo) GetUserByEmail(email string) (*domain.User, error) {
	user, ok := r.usersByEmail[email]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *stubUserRepo) GetUserByID(id string) (*domain.User, error) {
	user, ok := r.usersByID[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *stubUserRepo) SetUserAsOwner(id string) (*domain.User, error) {
	user, ok := r.usersByID[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	user.IsOwner = true
	return user, nil
}

func (r *stubUserRepo) GetFirstOwner() (*domain.User, error) {
	for _, user := range r.usersByID {
		if user.IsOwner {
			return user, nil
		}
	}
	return nil, errors.New("owner not found")
}

func (r *stubUserRepo) CreateSession(session *domain.Session) error {
	r.sessions[session.Token] = session
	return nil
}

func (r *stubUserRepo) GetUserBySessionToken(token string) (*domain.User, error) {
	session, ok := r.sessions[token]
	if !ok {
		return nil, errors.New("session not found")
	}
	return r.GetUserByID(session.UserID)
}

func (r *stubUserRepo) DeleteSession(token string) error {
	delete(r.sessions, token)
	return nil
}

func TestRegisterUser_HashesPasswordAndNormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	uc := NewUserUseCase(repo, testLogger())

	user, err := uc.RegisterUser(&domain.RegisterRequest{
		Email:    "  Ana@Example.COM ",
		Password: "Secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "Secret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Secret123")))
}

func TestRegisterUser_ShortPasswordIsRejected(t *testing.T) {
	uc := NewUserUseCase(newStubUserRepo(), testLogger())

	_, err := uc.RegisterUser(&domain.RegisterRequest{Email: "ana@example.com", Password: "short"})
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "password", validationErr.Field)
}

func TestAuthenticateUser_ValidCredentialsCreateSession(t *testing.T) {
	repo := newStubUserRepo()
	uc := NewUserUseCase(repo, testLogger())

	_, err := uc.RegisterUser(&domain.RegisterRequest{Email: "ana@example.com", Password: "Secret123"})
	require.NoError(t, err)

	resp, err := uc.AuthenticateUser("ana@example.com", "Secret123")
	require.NoError(t, err)
	require.True(t, resp.Authenticated)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)

	fromToken, err := uc.GetUserByToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, fromToken.ID)
}

func TestAuthenticateUser_WrongPasswordIsNotAnError(t *testing.T) {
	repo := newStubUserRepo()
	uc := NewUserUseCase(repo, testLogger())

	_, err := uc.RegisterUser(&domain.RegisterRequest{Email: "ana@example.com", Password: "Secret123"})
	require.NoError(t, err)

	resp, err := uc.AuthenticateUser("ana@example.com", "wrong-password")
	require.NoError(t, err)
	assert.False(t, resp.Authenticated)
	assert.Empty(t, resp.Token)
	assert.NotEmpty(t, resp.ErrorMessage)
}

func TestAuthenticateUser_UnknownEmailIsNotAnError(t *testing.T) {
	uc := NewUserUseCase(newStubUserRepo(), testLogger())

	resp, err := uc.AuthenticateUser("nobody@example.com", "whatever1")
	require.NoError(t, err)
	assert.False(t, resp.Authenticated)
}

func TestLogout_InvalidatesSession(t *testing.T) {
	repo := newStubUserRepo()
	uc := NewUserUseCase(repo, testLogger())

	_, err := uc.RegisterUser(&domain.RegisterRequest{Email: "ana@example.com", Password: "Secret123"})
	require.NoError(t, err)
	resp, err := uc.AuthenticateUser("ana@example.com", "Secret123")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(resp.Token))

	_, err = uc.GetUserByToken(resp.Token)
	assert.Error(t, err)
}

func TestMakeOwner_BootstrapsFirstOwnerOnly(t *testing.T) {
	repo := newStubUserRepo()
	uc := NewUserUseCase(repo, testLogger())

	first, err := uc.RegisterUser(&domain.RegisterRequest{Email: "first@example.com", Password: "Secret123"})
	require.NoError(t, err)
	second, err := uc.RegisterUser(&domain.RegisterRequest{Email: "second@example.com", Password: "Secret123"})
	require.NoError(t, err)

	promoted, err := uc.MakeOwner(first.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsOwner)

	_, err = uc.MakeOwner(second.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
