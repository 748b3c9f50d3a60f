// Package service composes the validator, the record store and the entity
// cache into the registry's CRUD operations.
//
// Every mutation runs validate, duplicate check, id allocation, persistence
// and cache mirroring inside one write-locked critical section, so the cache
// always equals the persisted records once an operation reports success.
package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/celerix-dev/celerix-registry/internal/engine"
	"github.com/celerix-dev/celerix-registry/internal/schema"
)

// Options configures a Service.
type Options struct {
	// Entity is the entity type served, e.g. "employee".
	Entity string
	// IDPrefix is the three-letter registration id prefix, e.g. "EMP".
	IDPrefix string
	// UniqueAttr is the secondary attribute that must be unique across records.
	UniqueAttr string
	// InternalErrorMsg replaces internal failures in caller-facing messages.
	InternalErrorMsg string
	// Logger receives error records. Nil discards them.
	Logger *slog.Logger
}

// DefaultOptions returns the employee registry settings.
func DefaultOptions() Options {
	return Options{
		Entity:           "employee",
		IDPrefix:         "EMP",
		UniqueAttr:       "email",
		InternalErrorMsg: DefaultInternalErrorMsg,
	}
}

// Service owns the cache and id allocator for one entity type.
type Service struct {
	mu     sync.RWMutex
	store  engine.RecordStore
	schema schema.Schema
	cache  *engine.Cache
	ids    *engine.Allocator

	entity      string
	uniqueAttr  string
	internalMsg string
	log         *slog.Logger
}

// New loads every persisted record of the entity type into the cache and
// seeds the id allocator with the highest well-formed id found.
func New(store engine.RecordStore, s schema.Schema, opts Options) (*Service, error) {
	def := DefaultOptions()
	if opts.Entity == "" {
		opts.Entity = def.Entity
	}
	if opts.IDPrefix == "" {
		opts.IDPrefix = def.IDPrefix
	}
	if opts.UniqueAttr == "" {
		opts.UniqueAttr = def.UniqueAttr
	}
	if opts.InternalErrorMsg == "" {
		opts.InternalErrorMsg = def.InternalErrorMsg
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	cache, err := engine.LoadCache(store, opts.Entity)
	if err != nil {
		return nil, err
	}

	ids := engine.NewAllocator(opts.IDPrefix)
	cache.Descend(func(id string, _ engine.Record) bool {
		return ids.Seed(id) != nil
	})

	return &Service{
		store:       store,
		schema:      s,
		cache:       cache,
		ids:         ids,
		entity:      opts.Entity,
		uniqueAttr:  opts.UniqueAttr,
		internalMsg: opts.InternalErrorMsg,
		log:         opts.Logger,
	}, nil
}

// Entity returns the entity type served.
func (s *Service) Entity() string { return s.entity }

// Count returns the number of cached records.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Len()
}

// LastID returns the last allocated registration id.
func (s *Service) LastID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids.Last()
}

// List returns the record with regID, or every record when regID is empty,
// sorted by id highest first.
func (s *Service) List(regID string) ([]engine.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if regID == "" {
		return s.cache.Descending(), nil
	}
	rec, ok := s.cache.Get(regID)
	if !ok {
		return nil, &engine.KeyError{Entity: s.entity, ID: regID, Err: engine.ErrNotFound}
	}
	return []engine.Record{rec}, nil
}

// Create validates rec with mandatory attributes enforced, rejects a
// duplicate unique attribute, then stores it under a freshly allocated id.
func (s *Service) Create(rec engine.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := schema.Validate(s.schema, rec, true); err != nil {
		return "", err
	}
	if s.cache.IsDuplicate(s.uniqueAttr, rec[s.uniqueAttr]) {
		return "", clientErrorf("%s already exists.", title(s.entity))
	}

	prev := s.ids.Last()
	id, err := s.ids.Allocate()
	if err != nil {
		return "", fmt.Errorf("allocate %s id: %w", s.entity, err)
	}

	stamped := rec.Clone()
	stamped[engine.IDAttr] = id
	if err := s.store.Insert(s.entity, id, stamped); err != nil {
		s.ids.Seed(prev)
		return "", err
	}
	s.cache.Put(id, stamped)
	return id, nil
}

// Update validates rec without mandatory checks, takes the target id from its
// regId attribute and shallow-merges the remaining attributes into the record.
func (s *Service) Update(rec engine.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := schema.Validate(s.schema, rec, false); err != nil {
		return err
	}
	id, err := takeID(rec)
	if err != nil {
		return err
	}

	partial := rec.Clone()
	delete(partial, engine.IDAttr)
	merged, err := s.store.Update(s.entity, id, partial)
	if err != nil {
		return err
	}
	s.cache.Put(id, merged)
	return nil
}

// Delete removes the record named by rec's regId attribute.
func (s *Service) Delete(rec engine.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := takeID(rec)
	if err != nil {
		return err
	}
	if err := s.store.Delete(s.entity, id); err != nil {
		return err
	}
	s.cache.Delete(id)
	return nil
}

func takeID(rec engine.Record) (string, error) {
	id, ok := rec.ID()
	if !ok {
		return "", clientErrorf("%s is required.", engine.IDAttr)
	}
	return id, nil
}

func title(entity string) string {
	if entity == "" {
		return entity
	}
	return strings.ToUpper(entity[:1]) + entity[1:]
}
