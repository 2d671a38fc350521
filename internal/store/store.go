// Package store persists the AppData document in a single durable
// key-value slot. The store knows nothing about task or user-state
// semantics; it only serializes and deserializes the aggregate.
package store

import "github.com/nhle/energiflow/internal/model"

// DataStore is the persistence interface for the AppData document.
//
// Load never fails: a missing or unreadable document yields a fresh
// default. Save is best-effort: failures are logged and swallowed so a
// broken disk never blocks in-memory interaction.
type DataStore interface {
	Load() *model.AppData
	Save(data *model.AppData)
	Clear()
	Export() (string, error)
}
