package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"offstash/internal/common"
)

// LZ4 compresses with the lz4 frame format at the default level. Faster
// than zstd with a lower ratio; useful when write throughput matters more
// than stored size. The frame format is self-describing.
type LZ4 struct{}

func NewLZ4() *LZ4 { return &LZ4{} }

func (LZ4) Name() string { return "lz4" }

func (LZ4) Compress(data []byte) ([]byte, error) {
	if err := checkSize(data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (LZ4) Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))
	result, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %v: %w", err, common.ErrCorruptPayload)
	}
	return result, nil
}
