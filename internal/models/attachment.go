package models

import "time"

// AttachmentRecord is one stored attachment. Records are immutable once
// written: an update is modeled as delete plus insert, never an in-place
// payload mutation.
//
// Fields:
//   - ID: opaque unique identifier within its partition, assigned at
//     creation.
//   - Name: caller-supplied display name, not required to be unique.
//   - MediaType: MIME-like string ("image/jpeg", "application/pdf", ...);
//     reconstruction metadata only, never routing logic.
//   - OriginalSize: byte length of the uncompressed source at write time.
//   - CompressedSize: byte length of the stored payload; always equal to
//     len(Payload).
//   - Payload: opaque stored bytes; the store never inspects them.
//   - Nonce: AES-GCM nonce when the payload is sealed at rest; empty
//     otherwise.
//   - CreatedAt: used for newest-first listing.
type AttachmentRecord struct {
	ID             string
	Name           string
	MediaType      string
	OriginalSize   int64
	CompressedSize int64
	Payload        []byte
	Nonce          []byte
	CreatedAt      time.Time
}
