package pipeline

import "fmt"

// ValidationError marks a client-caused failure (missing required field, slug
// collision). Always surfaces as a 400 before any store mutation runs.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StoreError wraps a remote document-store failure. Always a 500; the store's
// message is passed through for diagnostics.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }

// UploadError wraps an asset upload failure. Never fatal: the pipeline logs
// it and continues the mutation without an image change.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("asset upload: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }
