package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"offstash/internal/models"
)

func TestSum_AndRatio(t *testing.T) {
	records := []models.AttachmentRecord{
		{OriginalSize: 100, CompressedSize: 40},
		{OriginalSize: 200, CompressedSize: 80},
		{OriginalSize: 300, CompressedSize: 120},
	}

	u := Sum(records)
	assert.Equal(t, int64(600), u.TotalOriginalBytes)
	assert.Equal(t, int64(240), u.TotalCompressedBytes)
	assert.InDelta(t, 0.4, u.Ratio(), 1e-9)
}

func TestRatio_EmptyStoreIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Usage{}.Ratio())
	assert.Equal(t, 0.0, Sum(nil).Ratio())
}

func TestSum_MultiplePartitions(t *testing.T) {
	images := []models.AttachmentRecord{{OriginalSize: 10, CompressedSize: 4}}
	pdfs := []models.AttachmentRecord{{OriginalSize: 20, CompressedSize: 8}}

	u := Sum(images, pdfs)
	assert.Equal(t, int64(30), u.TotalOriginalBytes)
	assert.Equal(t, int64(12), u.TotalCompressedBytes)
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048575, "1024.0 KB"},
		{1048576, "1.00 MB"},
		{5 * 1048576, "5.00 MB"},
		{1 << 30, "1.00 GB"},
		{1 << 40, "1.00 TB"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatBytes(tc.in))
		})
	}
}
