// Package models defines the attachment and sync-queue record types.
package models

import (
	"fmt"
	"strings"
)

// Partition names an independently clearable subset of the attachment
// store. Partitions share the record shape and all operations.
type Partition string

const (
	PartitionImages Partition = "images"
	PartitionPDFs   Partition = "pdfs"
)

// Partitions lists every known partition, in accounting order.
func Partitions() []Partition {
	return []Partition{PartitionImages, PartitionPDFs}
}

// Valid reports whether p names a known partition.
func (p Partition) Valid() bool {
	return p == PartitionImages || p == PartitionPDFs
}

// PartitionForMediaType maps a MIME-like media type to the partition that
// stores it. The media type drives nothing else.
func PartitionForMediaType(mediaType string) (Partition, error) {
	switch {
	case mediaType == "application/pdf":
		return PartitionPDFs, nil
	case strings.HasPrefix(mediaType, "image/"):
		return PartitionImages, nil
	default:
		return "", fmt.Errorf("no partition for media type %q", mediaType)
	}
}
