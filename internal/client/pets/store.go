// Package pets tracks which pet the signed-in user is acting as, and the
// set of pets they own. The store is the sole writer of the currentPet
// storage key. The active pet survives reloads; it is cleared on logout (by
// the session store, which owns teardown) and on auth failures here.
package pets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/avelichko/petbook/internal/client/models"
	"github.com/avelichko/petbook/internal/client/storage"
	"github.com/avelichko/petbook/internal/common"
	"github.com/avelichko/petbook/internal/logging"
)

// sessionReader is the slice of the session store this package needs.
type sessionReader interface {
	IsAuthenticated() bool
}

// petsAPI is the slice of the API client this package needs. MyPets returns
// an already shape-normalized list regardless of how the backend wrapped it.
type petsAPI interface {
	MyPets(ctx context.Context) ([]models.Pet, error)
}

type Store struct {
	repo    storage.Repository
	api     petsAPI
	session sessionReader
	log     logging.Logger

	mu      sync.Mutex
	owned   []models.Pet
	active  *models.Pet
	lastErr error
	gen     uint64
}

// New constructs the store and synchronously rehydrates the persisted active
// pet. A corrupt record is deleted and treated as "no active pet".
func New(ctx context.Context, repo storage.Repository, api petsAPI, session sessionReader, log logging.Logger) *Store {
	s := &Store{repo: repo, api: api, session: session, log: log}

	raw, err := repo.Get(ctx, common.KeyCurrentPet)
	if err != nil {
		log.Error(ctx, "failed to read persisted active pet", "error", err)
		return s
	}
	if raw == nil {
		return s
	}
	var pet models.Pet
	if err := json.Unmarshal(raw, &pet); err != nil {
		log.Warn(ctx, "corrupt persisted active pet, clearing", "error", err)
		_ = repo.Delete(ctx, common.KeyCurrentPet)
		return s
	}
	s.active = &pet
	return s
}

// SetActivePet assigns (or, with nil, clears) the acting pet and persists
// the choice. This is the only mutator other components call directly.
func (s *Store) SetActivePet(ctx context.Context, pet *models.Pet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setActiveLocked(ctx, pet)
}

func (s *Store) setActiveLocked(ctx context.Context, pet *models.Pet) error {
	if pet == nil {
		s.active = nil
		return s.repo.Delete(ctx, common.KeyCurrentPet)
	}
	raw, err := json.Marshal(pet)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}
	if err := s.repo.Set(ctx, common.KeyCurrentPet, raw); err != nil {
		return err
	}
	s.active = pet.Clone()
	return nil
}

// LoadOwnedPets fetches the caller's pets. Without an authenticated session
// it returns immediately with no network call. On success, if no pet is
// active yet and the collection is non-empty, the first pet becomes active.
// A 401-class failure clears the active pet: a stale "acting as" selection
// must not survive an auth failure.
//
// The returned error is also recorded on the store; callers polling Err()
// may ignore the return value.
func (s *Store) LoadOwnedPets(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return nil
	}

	gen := s.beginLoad()
	pets, err := s.api.MyPets(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		// A newer load superseded this one; its result must not win.
		return nil
	}

	if err != nil {
		s.lastErr = err
		if errors.Is(err, common.ErrUnauthorized) {
			if clearErr := s.setActiveLocked(ctx, nil); clearErr != nil {
				s.log.Error(ctx, "failed to clear active pet", "error", clearErr)
			}
		}
		return err
	}

	s.lastErr = nil
	s.owned = pets
	if s.active == nil && len(pets) > 0 {
		if err := s.setActiveLocked(ctx, &pets[0]); err != nil {
			s.lastErr = err
			return err
		}
	}
	return nil
}

// Refresh re-fetches the owned pets and, when the active pet's id still
// exists in the fresh collection, re-binds the possibly updated record as
// active. An active pet missing from the collection is left unchanged.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return nil
	}

	gen := s.beginLoad()
	pets, err := s.api.MyPets(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil
	}

	if err != nil {
		s.lastErr = err
		if errors.Is(err, common.ErrUnauthorized) {
			if clearErr := s.setActiveLocked(ctx, nil); clearErr != nil {
				s.log.Error(ctx, "failed to clear active pet", "error", clearErr)
			}
		}
		return err
	}

	s.lastErr = nil
	s.owned = pets
	if s.active != nil {
		for i := range pets {
			if pets[i].ID == s.active.ID {
				if err := s.setActiveLocked(ctx, &pets[i]); err != nil {
					s.lastErr = err
					return err
				}
				break
			}
		}
	}
	return nil
}

func (s *Store) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	return s.gen
}

// ActivePet returns a copy of the acting pet, or nil when none is set.
func (s *Store) ActivePet() *models.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Clone()
}

// OwnedPets returns a copy of the most recently loaded collection.
func (s *Store) OwnedPets() []models.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Pet(nil), s.owned...)
}

// Err returns the store-level error flag from the last load, nil when the
// last load succeeded.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
