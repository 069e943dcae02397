package models

import (
	"fmt"
	"strings"
	"time"
)

// SyncItemKind is the closed set of item kinds the sync queue carries.
type SyncItemKind string

const (
	SyncKindPDF   SyncItemKind = "pdf"
	SyncKindImage SyncItemKind = "image"
)

// Valid reports whether k is a known kind.
func (k SyncItemKind) Valid() bool {
	return k == SyncKindPDF || k == SyncKindImage
}

// KindForMediaType maps a media type onto the sync item kind.
func KindForMediaType(mediaType string) (SyncItemKind, error) {
	switch {
	case mediaType == "application/pdf":
		return SyncKindPDF, nil
	case strings.HasPrefix(mediaType, "image/"):
		return SyncKindImage, nil
	default:
		return "", fmt.Errorf("no sync kind for media type %q", mediaType)
	}
}

// SyncItem is one pending upload. Synced starts false; an item is removed
// from durable storage only after the transport confirms delivery, and is
// never re-enqueued after removal. Items drain in Timestamp order, oldest
// first.
type SyncItem struct {
	ID        string            `json:"id"`
	Kind      SyncItemKind      `json:"kind"`
	FileName  string            `json:"fileName"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   []byte            `json:"payload"`
	Synced    bool              `json:"synced"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
