// Package common contains shared constants and sentinel errors used across
// offstash components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("duplicate id")

	// StorageUnavailable signals that the durable backend itself failed,
	// as opposed to a per-record condition.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Codec errors.
	ErrCorruptPayload  = errors.New("corrupt payload")
	ErrPayloadTooLarge = errors.New("payload too large")

	// Sync errors.
	ErrTransportFailure = errors.New("transport failure")
)
