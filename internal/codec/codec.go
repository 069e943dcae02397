// Package codec implements the lossless payload compression used by the
// attachment store. Codecs are pure transforms: no state beyond shared
// encoder instances, deterministic output for a given input.
package codec

import (
	"fmt"

	"offstash/internal/common"
)

// MaxPayloadBytes is the largest input a codec accepts. Inputs above it
// fail with ErrPayloadTooLarge rather than being truncated.
const MaxPayloadBytes = 1 << 30 // 1 GiB

// Codec is a stateless compress/decompress pair. Decompress must be the
// exact inverse of Compress for every byte sequence, including the empty
// one. Both formats used here produce self-describing streams, so
// decompression needs no out-of-band size.
type Codec interface {
	// Name identifies the codec ("zstd", "lz4"); recorded in config,
	// never in stored records.
	Name() string

	// Compress returns the compressed form of data.
	Compress(data []byte) ([]byte, error)

	// Decompress restores the original bytes. Input that is not a valid
	// stream for this codec fails with ErrCorruptPayload.
	Decompress(data []byte) ([]byte, error)
}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	switch name {
	case "zstd", "":
		return NewZstd(), nil
	case "lz4":
		return NewLZ4(), nil
	default:
		return nil, fmt.Errorf("unknown codec: %q", name)
	}
}

func checkSize(data []byte) error {
	if len(data) > MaxPayloadBytes {
		return fmt.Errorf("input is %d bytes, limit %d: %w", len(data), MaxPayloadBytes, common.ErrPayloadTooLarge)
	}
	return nil
}
