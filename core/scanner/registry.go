// Package scanner - Registry for record readers
package scanner

import (
	"context"
	"sync"

	"travel-reimbursement/core/types"
	"travel-reimbursement/internal/errors"
)

// DefaultRegistry holds the record readers by name. Detection asks each
// reader in registration order; the fallback reader takes any file no reader
// claims.
type DefaultRegistry struct {
	mu       sync.RWMutex
	scanners map[string]Scanner
	order    []string
	fallback string
}

// NewRegistry creates an empty registry with no fallback
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		scanners: make(map[string]Scanner),
	}
}

// Register adds a scanner to the registry
func (r *DefaultRegistry) Register(scanner Scanner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := scanner.Name()
	if _, exists := r.scanners[name]; exists {
		return errors.Newf(errors.TypeConfig, "scanner already registered: %s", name)
	}

	r.scanners[name] = scanner
	r.order = append(r.order, name)
	return nil
}

// SetFallback names the registered scanner used for inputs no scanner claims
func (r *DefaultRegistry) SetFallback(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scanners[name]; !ok {
		return errors.NotFound("scanner", name)
	}
	r.fallback = name
	return nil
}

// GetScanner returns a scanner by name
func (r *DefaultRegistry) GetScanner(name string) (Scanner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scanner, ok := r.scanners[name]
	return scanner, ok
}

// Names lists the registered scanners in registration order
func (r *DefaultRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Scan reads input with the named scanner, skipping detection
func (r *DefaultRegistry) Scan(ctx context.Context, name string, input *types.ProjectInput) (*ScanResult, error) {
	scanner, ok := r.GetScanner(name)
	if !ok {
		return nil, errors.NotSupported("reader "+name).WithContext("available", r.Names())
	}
	return scanner.Scan(ctx, input)
}

// DetectAndScan reads input with the first scanner that claims it, or with
// the fallback scanner when none does.
func (r *DefaultRegistry) DetectAndScan(ctx context.Context, input *types.ProjectInput) (*ScanResult, error) {
	scanner, err := r.detect(ctx, input)
	if err != nil {
		return nil, err
	}
	return scanner.Scan(ctx, input)
}

func (r *DefaultRegistry) detect(ctx context.Context, input *types.ProjectInput) (Scanner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		scanner := r.scanners[name]

		canScan, err := scanner.CanScan(ctx, input)
		if err != nil {
			continue // Skip scanners that error on detection
		}
		if canScan {
			return scanner, nil
		}
	}

	if scanner, ok := r.scanners[r.fallback]; ok {
		return scanner, nil
	}
	return nil, errors.Newf(errors.TypeNotSupported, "no scanner found for input: %s", input.Path)
}

// Global default registry
var defaultRegistry = NewRegistry()

// Register adds a scanner to the default registry
func Register(scanner Scanner) error {
	return defaultRegistry.Register(scanner)
}

// GetDefault returns the default registry
func GetDefault() *DefaultRegistry {
	return defaultRegistry
}
