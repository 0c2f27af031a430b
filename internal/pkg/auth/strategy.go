package auth

import (
	"errors"
	"time"

	"github.com/smartkart/smartkart/internal/domain/model"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies bearer tokens carrying subject id and role.
type Strategy interface {
	IssueToken(principal model.Principal) (string, error)
	ParseToken(token string) (model.Principal, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
