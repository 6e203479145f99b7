package model

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title not null")
	ErrEmptyReply = errors.New("reply not null")
)

// Store is the persistence adapter a List replicates into. Implementations
// scope all records to a single namespace and assign ids on Insert.
type Store interface {
	FetchAll(ctx context.Context) ([]Record, error)
	Insert(ctx context.Context, r Record) (string, error)
	Update(ctx context.Context, id string, r Record) error
	Remove(ctx context.Context, id string) error
}

// ValidateTitle trims s and rejects it when nothing is left.
func ValidateTitle(s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := validation.Validate(s, validation.Required); err != nil {
		return "", ErrEmptyTitle
	}
	return s, nil
}

// ValidateReply trims s and rejects it when nothing is left.
func ValidateReply(s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := validation.Validate(s, validation.Required); err != nil {
		return "", ErrEmptyReply
	}
	return s, nil
}
