// Package operator models the admin identity whose capability token gates
// the destructive ledger operations. Credential verification itself is
// delegated to the auth infrastructure; this package only carries the
// stored identity.
package operator

import (
	"fmt"
	"strings"
	"time"
)

type Operator struct {
	id           uint
	username     string
	passwordHash string
	createdAt    time.Time
}

func NewOperator(username, passwordHash string) (*Operator, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(username) > 50 {
		return nil, fmt.Errorf("username exceeds maximum length of 50 characters")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	return &Operator{
		username:     username,
		passwordHash: passwordHash,
		createdAt:    time.Now().UTC(),
	}, nil
}

func ReconstructOperator(id uint, username, passwordHash string, createdAt time.Time) (*Operator, error) {
	if id == 0 {
		return nil, fmt.Errorf("operator ID cannot be zero")
	}
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	return &Operator{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}, nil
}

func (o *Operator) ID() uint {
	return o.id
}

func (o *Operator) Username() string {
	return o.username
}

func (o *Operator) PasswordHash() string {
	return o.passwordHash
}

func (o *Operator) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Operator) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("operator ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("operator ID cannot be zero")
	}
	o.id = id
	return nil
}
