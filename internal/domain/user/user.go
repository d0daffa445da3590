package user

import (
	"fmt"
	"time"

	"github.com/cloudcare/helpdesk/internal/shared/biztime"
)

// User is an account that can authenticate against the helpdesk.
type User struct {
	id           string
	email        string
	passwordHash string
	firstName    string
	lastName     string
	role         Role
	isActive     bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates an active account. The id is assigned by the repository.
func NewUser(email, passwordHash, firstName, lastName string, role Role) (*User, error) {
	email = NormalizeEmail(email)
	firstName = NormalizeName(firstName)
	lastName = NormalizeName(lastName)

	if email == "" {
		return nil, NewDomainError("email is required")
	}
	if passwordHash == "" {
		return nil, NewDomainError("password hash is required")
	}
	if err := validateName("firstName", firstName); err != nil {
		return nil, err
	}
	if err := validateName("lastName", lastName); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, NewDomainError(fmt.Sprintf("invalid role: %s", role))
	}

	now := biztime.NowUTC()
	return &User{
		email:        email,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence without re-validating names.
func ReconstructUser(
	id string,
	email string,
	passwordHash string,
	firstName string,
	lastName string,
	role Role,
	isActive bool,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		role:         role,
		isActive:     isActive,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) LastName() string {
	return u.lastName
}

func (u *User) FullName() string {
	return u.firstName + " " + u.lastName
}

func (u *User) Role() Role {
	return u.role
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// SetID is called once by the repository after insert.
func (u *User) SetID(id string) error {
	if u.id != "" {
		return fmt.Errorf("user ID is already set")
	}
	if id == "" {
		return fmt.Errorf("user ID cannot be empty")
	}
	u.id = id
	return nil
}

// RecordLogin stamps the time of a successful login.
func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
	u.updatedAt = now
}

func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return NewDomainError("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) Deactivate() {
	if !u.isActive {
		return
	}
	u.isActive = false
	u.updatedAt = biztime.NowUTC()
}

func (u *User) Activate() {
	if u.isActive {
		return
	}
	u.isActive = true
	u.updatedAt = biztime.NowUTC()
}
