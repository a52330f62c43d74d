// Package store holds the entity stores: the layer between the services and
// the record accessors that owns transaction boundaries and cache coherence.
//
// Every mutating method acquires one connection, runs all of its accessor
// calls inside one transaction and, only after the commit succeeds, evicts
// every cache namespace the store owns. Reads go through the cache: a miss
// acquires a connection without a transaction, calls the accessor and caches
// the result, whether the entity was found or not.
//
// Failures are reported with the storeerr taxonomy: *storeerr.ConnectionError
// when a connection cannot be acquired, begun or committed, and
// *storeerr.OperationError when an accessor fails during a specific
// operation. Absence is never an error; lookups return a found flag.
package store

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-commerce-store/cache"
	"github.com/goliatone/go-commerce-store/dbconn"
	"github.com/goliatone/go-commerce-store/storeerr"
)

// lookup is the cached form of a single entity read. Absence is cached too.
type lookup[T any] struct {
	Value T
	Found bool
}

// base carries the dependencies and the transaction and read-through
// machinery shared by every store.
type base struct {
	provider   dbconn.Provider
	cache      *cache.Cache
	logger     logrus.FieldLogger
	entity     storeerr.Entity
	namespaces []string
}

func newBase(provider dbconn.Provider, c *cache.Cache, logger logrus.FieldLogger, entity storeerr.Entity, namespaces ...string) base {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return base{
		provider:   provider,
		cache:      c,
		logger:     logger.WithField("entity", string(entity)),
		entity:     entity,
		namespaces: namespaces,
	}
}

func (b *base) release(conn dbconn.Conn) {
	if err := conn.Close(); err != nil {
		b.logger.WithError(err).Warn("releasing connection failed")
	}
}
