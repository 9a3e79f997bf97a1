// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// GenerationError reports that the external service returned no usable
// result. Payload holds the raw reply for diagnostics; it may be empty when
// the request never reached the service.
type GenerationError struct {
	Payload string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// StorageError reports a failed read or write of the queue or a draft.
type StorageError struct {
	// Op is what was being attempted: "read", "parse", "write".
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
