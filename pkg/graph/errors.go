package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrNotACompany     = errors.New("node is not a company")
	ErrBadTarget       = errors.New("edge target is not a company or organization")
	ErrNotAController  = errors.New("node cannot control (not a person or organization)")
	ErrUnknownEndpoint = errors.New("edge references unknown node")
	ErrDuplicateID     = errors.New("duplicate node identifier")
	ErrInvalidRecord   = errors.New("invalid record")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // Operation that failed (e.g., "Load", "OutgoingEdges")
	Entity string // Entity type (e.g., "node", "edge")
	ID     string // Entity ID (if applicable)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// LoadError records one data-quality problem encountered during bulk load.
// Load errors are collected, never fatal: the run continues with the
// offending record excluded or degraded.
type LoadError struct {
	Record string // human-readable identification of the offending record
	Err    error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Record, e.Err)
}

// Unwrap supports errors.Is against the sentinel errors
func (e LoadError) Unwrap() error {
	return e.Err
}
