// Package auth gates the admin listing. The gate is an interface so the
// shared password can be swapped for a real credential scheme.
package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid_credentials")

type Authenticator interface {
	Authenticate(ctx context.Context, password string) error
}

// StaticPassword checks against one shared secret. Only its bcrypt hash is
// kept after construction.
type StaticPassword struct {
	hash []byte
}

func NewStaticPassword(secret string) (*StaticPassword, error) {
	return NewStaticPasswordCost(secret, bcrypt.DefaultCost)
}

func NewStaticPasswordCost(secret string, cost int) (*StaticPassword, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return nil, err
	}
	return &StaticPassword{hash: hash}, nil
}

func (p *StaticPassword) Authenticate(_ context.Context, password string) error {
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
