package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 7 * 24 * time.Hour

var _ domain.UserUseCase = (*userUseCase)(nil)

type userUseCase struct {
	userRepo domain.UserRepository
	log      *logrus.Logger
}

func NewUserUseCase(repo domain.UserRepository, logger *logrus.Logger) domain.UserUseCase {
	return &userUseCase{
		userRepo: repo,
		log:      logger,
	}
}

func (uc *userUseCase) RegisterUser(req *domain.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	uc.log.Infof("Use Case: Attempting registration for email: %s", email)

	if err := req.Validate(); err != nil {
		uc.log.Warnf("Use Case: Registration validation failed for %s: %v", email, err)
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: string(hashedPassword),
	}

	createdUser, err := uc.userRepo.CreateUser(newUser)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user %s: %v", email, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User registered successfully. ID: %s, Email: %s", createdUser.ID, createdUser.Email)
	return createdUser, nil
}

func (uc *userUseCase) AuthenticateUser(email, password string) (*domain.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	uc.log.Infof("Use Case: Attempting authentication for email: %s", email)

	if email == "" || password == "" {
		return &domain.AuthResponse{Authenticated: false, ErrorMessage: "Invalid email or password"}, nil
	}

	user, err := uc.userRepo.GetUserByEmail(email)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			uc.log.Warnf("Use Case: Auth failed - user not found: %s", email)
			return &domain.AuthResponse{Authenticated: false, ErrorMessage: "Invalid email or password"}, nil
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during auth: %v", email, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Auth failed - incorrect password for user %s", email)
			return &domain.AuthResponse{Authenticated: false, ErrorMessage: "Invalid email or password"}, nil
		}
		uc.log.Errorf("Use Case: Error comparing password hash for user %s: %v", email, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := uc.userRepo.CreateSession(session); err != nil {
		uc.log.Errorf("Use Case: Failed to persist session for user %s: %v", email, err)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	uc.log.Infof("Use Case: Authentication successful for user %s (ID: %s)", email, user.ID)
	return &domain.AuthResponse{
		Authenticated: true,
		Token:         session.Token,
		User:          user,
	}, nil
}

func (uc *userUseCase) Logout(token string) error {
	if token == "" {
		return nil
	}
	return uc.userRepo.DeleteSession(token)
}

func (uc *userUseCase) GetUserByToken(token string) (*domain.User, error) {
	if token == "" {
		return nil, errors.New("session token cannot be empty")
	}
	return uc.userRepo.GetUserBySessionToken(token)
}

// MakeOwner promotes a user to the owner role. Only allowed while no owner
// exists yet; it is the bootstrap path for a fresh installation.
func (uc *userUseCase) MakeOwner(userID string) (*domain.User, error) {
	if userID == "" {
		return nil, errors.New("invalid user ID")
	}

	existingOwner, err := uc.userRepo.GetFirstOwner()
	if err != nil && !strings.Contains(err.Error(), "not found") {
		uc.log.Errorf("Use Case: Failed to check for existing owner: %v", err)
		return nil, fmt.Errorf("failed to check for existing owner: %w", err)
	}
	if existingOwner != nil {
		uc.log.Warnf("Use Case: User %s attempted owner bootstrap but owner %s already exists", userID, existingOwner.ID)
		return nil, domain.ErrForbidden
	}

	user, err := uc.userRepo.SetUserAsOwner(userID)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to promote user %s to owner: %v", userID, err)
		return nil, err
	}
	uc.log.Infof("Use Case: User %s is now the store owner", userID)
	return user, nil
}
