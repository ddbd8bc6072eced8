package domain

import "time"

type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	PasswordHash    string    `json:"-"`
	IsOwner         bool      `json:"isOwner"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

type AuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Token         string `json:"token,omitempty"`
	User          *User  `json:"user,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}

type UserRepository interface {
	CreateUser(user *User) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserByID(id string) (*User, error)
	SetUserAsOwner(id string) (*User, error)
	GetFirstOwner() (*User, error)
	CreateSession(session *Session) error
	GetUserBySessionToken(token string) (*User, error)
	DeleteSession(token string) error
}

type UserUseCase interface {
	RegisterUser(req *RegisterRequest) (*User, error)
	AuthenticateUser(email, password string) (*AuthResponse, error)
	Logout(token string) error
	GetUserByToken(token string) (*User, error)
	MakeOwner(userID string) (*User, error)
}
