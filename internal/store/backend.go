// Package store persists day records on a key-value surface.
package store

import "context"

// Keys under which slotlog values live. They match the keys used by the
// original browser app so exported data can be imported unchanged.
const (
	HistoryKey  = "time-tracker-app"
	TemplateKey = "time-tracker-initial-slots"
)

// Backend is a durable key-value surface scoped to the application.
type Backend interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put replaces the value for key. It returns only after the write is durable.
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
