// Package translator lowers a parsed query (internal/parser) into an
// Elasticsearch Query DSL JSON body (C8), driven by field classifications
// produced by internal/schema and named per internal/naming.
package translator

import (
	"fmt"
	"sync"

	"github.com/infiniv/luqum/internal/naming"
	"github.com/infiniv/luqum/internal/parser"
)

// Translator converts a parsed query tree into an engine-specific query
// body. This module ships exactly one concrete implementation,
// ElasticsearchTranslator, registered under the name "elasticsearch" — the
// interface and Registry exist so a host can swap translators without
// touching call sites, per the teacher's translator/registry pattern.
type Translator interface {
	// Translate converts tree into a query body. names, if non-nil, lets the
	// translator attribute "_name" to the sub-queries it builds.
	Translate(tree parser.Node, opts *Options, names *naming.NameIndex) (map[string]interface{}, error)

	// Engine returns the identifier this translator targets.
	Engine() string
}

// Registry manages translator instances, keyed by engine name.
type Registry struct {
	translators map[string]Translator
	mu          sync.RWMutex
}

// NewRegistry creates a new empty translator registry.
func NewRegistry() *Registry {
	return &Registry{translators: make(map[string]Translator)}
}

// Register adds a translator to the registry.
func (r *Registry) Register(engine string, t Translator) error {
	if engine == "" {
		return fmt.Errorf("engine name cannot be empty")
	}
	if t == nil {
		return fmt.Errorf("translator cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.translators[engine]; exists {
		return fmt.Errorf("translator for %s already registered", engine)
	}
	r.translators[engine] = t
	return nil
}

// Get retrieves a translator by engine name.
func (r *Registry) Get(engine string) (Translator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.translators[engine]
	if !exists {
		return nil, fmt.Errorf("translator for %s not found", engine)
	}
	return t, nil
}

// List returns every registered engine name.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.translators))
	for engine := range r.translators {
		out = append(out, engine)
	}
	return out
}
