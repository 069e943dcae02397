package services

import (
	"fmt"

	"offstash/internal/models"
)

// Usage aggregates size metadata across stored records. It is computed
// from listing output, never cached.
type Usage struct {
	TotalOriginalBytes   int64
	TotalCompressedBytes int64
}

// Ratio is compressed over original bytes; 0 for an empty store.
func (u Usage) Ratio() float64 {
	if u.TotalOriginalBytes == 0 {
		return 0
	}
	return float64(u.TotalCompressedBytes) / float64(u.TotalOriginalBytes)
}

// Add merges another usage into this one.
func (u Usage) Add(other Usage) Usage {
	return Usage{
		TotalOriginalBytes:   u.TotalOriginalBytes + other.TotalOriginalBytes,
		TotalCompressedBytes: u.TotalCompressedBytes + other.TotalCompressedBytes,
	}
}

// Sum aggregates the size metadata of the given record lists.
func Sum(lists ...[]models.AttachmentRecord) Usage {
	var u Usage
	for _, records := range lists {
		for _, rec := range records {
			u.TotalOriginalBytes += rec.OriginalSize
			u.TotalCompressedBytes += rec.CompressedSize
		}
	}
	return u
}

// FormatBytes renders a byte count in human units. Thresholds are exact
// powers of 1024; KB gets one decimal, MB and above two, so displayed
// totals are reproducible.
func FormatBytes(bytes int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
		tb = 1 << 40
	)
	switch {
	case bytes < kb:
		return fmt.Sprintf("%d B", bytes)
	case bytes < mb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	case bytes < gb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes < tb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	default:
		return fmt.Sprintf("%.2f TB", float64(bytes)/tb)
	}
}
