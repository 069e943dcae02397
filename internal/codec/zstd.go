package codec

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"offstash/internal/common"
)

// Shared encoder/decoder, reused across calls to avoid repeated
// initialization. Both are safe for concurrent use via EncodeAll/DecodeAll.
// The level is a fixed constant so size accounting stays reproducible
// across runs.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}

	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// Zstd compresses with zstd at a fixed default level. The frame header
// makes the stream self-describing, so Decompress needs only the bytes.
type Zstd struct{}

func NewZstd() *Zstd { return &Zstd{} }

func (Zstd) Name() string { return "zstd" }

func (Zstd) Compress(data []byte) ([]byte, error) {
	if err := checkSize(data); err != nil {
		return nil, err
	}
	return zstdEncoder.EncodeAll(data, nil), nil
}

func (Zstd) Decompress(data []byte) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %v: %w", err, common.ErrCorruptPayload)
	}
	return result, nil
}
