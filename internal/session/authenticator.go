package session

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/qrinvite/internal/dependencies/clock"
	"github.com/mcoot/qrinvite/internal/model"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator checks a username/password pair and returns the identity to store
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (model.Identity, error)
}

// User is one row of a static credential table
type User struct {
	Username    string
	Password    string
	DisplayName string
}

// DefaultUsers is the credential table built into the client.
// It is illustrative only and protects nothing.
var DefaultUsers = []User{
	{Username: "admin", Password: "admin123", DisplayName: "Administrador"},
	{Username: "user", Password: "user123", DisplayName: "Usuário"},
}

type credential struct {
	displayName  string
	passwordHash []byte
}

// StaticAuthenticator authenticates against a fixed in-process table
type StaticAuthenticator struct {
	clock     clock.Clock
	users     map[string]credential
	dummyHash []byte
}

// NewStaticAuthenticator hashes the table with bcrypt at the given cost
func NewStaticAuthenticator(clk clock.Clock, cost int, users ...User) (*StaticAuthenticator, error) {
	a := &StaticAuthenticator{
		clock: clk,
		users: make(map[string]credential, len(users)),
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", u.Username, err)
		}
		a.users[u.Username] = credential{displayName: u.DisplayName, passwordHash: hash}
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("unknown-user"), cost)
	if err != nil {
		return nil, err
	}
	a.dummyHash = dummy

	return a, nil
}

// Ensure StaticAuthenticator implements Authenticator
var _ Authenticator = (*StaticAuthenticator)(nil)

// Authenticate matches username exactly and checks the password hash
func (a *StaticAuthenticator) Authenticate(ctx context.Context, username, password string) (model.Identity, error) {
	cred, ok := a.users[username]
	if !ok {
		// Unknown users pay the same hashing cost as known ones
		_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
		return model.Identity{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(cred.passwordHash, []byte(password)); err != nil {
		return model.Identity{}, ErrInvalidCredentials
	}

	return model.Identity{
		Username:    username,
		DisplayName: cred.displayName,
		LoginTime:   a.clock.Now().UTC(),
	}, nil
}
