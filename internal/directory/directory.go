// Package directory keeps the local user directory in sync with the external
// auth service and enforces the role-eligibility rules.
package directory

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AulaWare/aula-backend/internal/identity"
	"github.com/AulaWare/aula-backend/internal/store"
	models "github.com/AulaWare/aula-backend/pkg/db"
)

// Service performs directory operations against the store
type Service struct {
	store *store.Store
}

// NewService creates a directory service
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// SyncResult reports what EnsureProfile actually did. The satellite insert
// is advisory: its failure is carried here instead of the error return so
// the caller can log it without failing the request.
type SyncResult struct {
	ProfileCreated bool
	SatelliteErr   error
}

// EnsureProfile makes sure a verified identity has a profile row, creating
// it (plus an empty role satellite) on first sight. Runs on every
// authenticated request; the existence check keeps repeats cheap. An
// existing profile is left untouched, metadata drift is not reconciled.
//
// Safe under concurrent first requests for the same identity: the losing
// insert comes back as a duplicate key and is treated as already-exists.
func (s *Service) EnsureProfile(ctx context.Context, ident *identity.Identity) (SyncResult, error) {
	var result SyncResult

	_, err := s.store.GetUserByID(ctx, ident.ID)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return result, err
	}

	role := ParseRole(ident.MetaString("role"))
	var fullName *string
	if name := ident.MetaString("full_name"); name != "" {
		fullName = &name
	} else if name := ident.MetaString("name"); name != "" {
		fullName = &name
	}

	profile := models.UserProfile{
		ID:       ident.ID,
		Email:    ident.Email,
		FullName: fullName,
		Role:     string(role),
		Meta:     datatypes.JSONMap(ident.Metadata),
	}
	if err := s.store.InsertUser(ctx, &profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a parallel first request
			return result, nil
		}
		return result, err
	}
	result.ProfileCreated = true

	if err := s.store.InsertRoleSatellite(ctx, satelliteFor[role](ident.ID)); err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			result.SatelliteErr = err
		}
	}
	return result, nil
}
