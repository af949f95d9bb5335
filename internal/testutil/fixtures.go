package testutil

import (
	"time"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the reference time used by fixtures.
var FixedNow = time.Date(2026, 2, 19, 8, 0, 0, 0, time.UTC)

func NewTestProject(name string) *domain.Project {
	return &domain.Project{
		ID:   uuid.New().String(),
		Name: name,
	}
}

// Flag options
type FlagOption func(*domain.Flag)

func WithParent(id string) FlagOption {
	return func(f *domain.Flag) {
		f.ParentID = &id
	}
}

func WithBoolValue(v bool) FlagOption {
	return func(f *domain.Flag) {
		f.BoolValue = v
	}
}

// WithEnum turns the flag into an enum flag holding value.
func WithEnum(enumTypeID, value string) FlagOption {
	return func(f *domain.Flag) {
		f.Type = domain.FlagEnum
		f.BoolValue = false
		f.EnumTypeID = enumTypeID
		f.EnumValue = value
	}
}

func WithTimes(created, updated time.Time) FlagOption {
	return func(f *domain.Flag) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// NewTestFlag builds a boolean flag named name, off, created at FixedNow.
func NewTestFlag(name string, opts ...FlagOption) domain.Flag {
	f := domain.NewBooleanFlag(uuid.New().String(), name, nil, FixedNow)
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func NewTestEnumType(name string, values ...string) domain.EnumType {
	return domain.EnumType{
		ID:     uuid.New().String(),
		Name:   name,
		Values: values,
	}
}

func NewTestAuthSession(user string, ttl time.Duration) *domain.AuthSession {
	return &domain.AuthSession{
		Token:     uuid.New().String(),
		User:      user,
		CreatedAt: FixedNow,
		ExpiresAt: FixedNow.Add(ttl),
	}
}
