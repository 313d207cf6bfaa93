// Package effects defines effect types as data structures representing I/O operations.
// Planners in the core return effects; the app layer interprets them.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string // "debug", "info", "warn"
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// PersistEffect represents a database persistence operation.
type PersistEffect struct {
	Entity    string // e.g. "generation_run"
	Operation string // e.g. "create"
	Data      any
}

func (e PersistEffect) EffectType() string { return "persist" }

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string // "mkdir" or "write"
	Path      string
	Content   []byte // For write operations
	Mode      uint32 // File permissions
}

func (e FileEffect) EffectType() string { return "file" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
