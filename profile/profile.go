// Package profile stores the user's profile and style preference in the
// device-local key-value store.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stylesuggest/store"
)

const (
	NameKey            = "profileName"
	EmailKey           = "profileEmail"
	StylePreferenceKey = "stylePreference"

	DefaultName  = "Matheus Oliveira"
	DefaultEmail = "matheus@gmail.com"
)

var ErrEmptyStylePreference = errors.New("style preference cannot be empty")

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Service struct {
	KV store.KV
}

func NewService(kv store.KV) *Service {
	return &Service{KV: kv}
}

// Load returns the stored profile. Keys that were never written keep their
// defaults independently of each other.
func (s *Service) Load(ctx context.Context) (Profile, error) {
	p := Profile{Name: DefaultName, Email: DefaultEmail}

	name, ok, err := s.KV.Get(ctx, NameKey)
	if err != nil {
		return p, fmt.Errorf("load profile name: %w", err)
	}
	if ok {
		p.Name = name
	}

	email, ok, err := s.KV.Get(ctx, EmailKey)
	if err != nil {
		return p, fmt.Errorf("load profile email: %w", err)
	}
	if ok {
		p.Email = email
	}
	return p, nil
}

func (s *Service) Save(ctx context.Context, p Profile) error {
	if err := s.KV.Set(ctx, NameKey, p.Name); err != nil {
		return fmt.Errorf("save profile name: %w", err)
	}
	if err := s.KV.Set(ctx, EmailKey, p.Email); err != nil {
		return fmt.Errorf("save profile email: %w", err)
	}
	return nil
}

func (s *Service) StylePreference(ctx context.Context) (string, error) {
	v, _, err := s.KV.Get(ctx, StylePreferenceKey)
	if err != nil {
		return "", fmt.Errorf("load style preference: %w", err)
	}
	return v, nil
}

func (s *Service) SaveStylePreference(ctx context.Context, pref string) error {
	pref = strings.TrimSpace(pref)
	if pref == "" {
		return ErrEmptyStylePreference
	}
	if err := s.KV.Set(ctx, StylePreferenceKey, pref); err != nil {
		return fmt.Errorf("save style preference: %w", err)
	}
	return nil
}
