// Package services holds the application services built on the
// repositories: attachment storage with compression, size accounting and
// mutation notifications.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"offstash/internal/codec"
	"offstash/internal/common"
	"offstash/internal/cryptox"
	"offstash/internal/logging"
	"offstash/internal/models"
	"offstash/internal/repositories/attachments"
)

// AttachmentService is the write/read side of the attachment store.
// Compression happens at this boundary: the repository below stays
// byte-agnostic.
type AttachmentService interface {
	// Put compresses (when configured), optionally seals, and durably
	// stores raw bytes under a fresh id. Returns the stored record.
	Put(ctx context.Context, partition models.Partition, name, mediaType string, raw []byte) (*models.AttachmentRecord, error)

	// Get returns a single record without reconstructing its payload.
	Get(ctx context.Context, partition models.Partition, id string) (*models.AttachmentRecord, error)

	// List returns the partition's records newest first.
	List(ctx context.Context, partition models.Partition) ([]models.AttachmentRecord, error)

	// Reconstruct returns the original bytes for a record obtained from
	// Get or List. A record that cannot be reconstructed reports
	// ErrCorruptPayload for itself only; other records stay readable.
	Reconstruct(ctx context.Context, rec *models.AttachmentRecord) ([]byte, error)

	// Delete removes one record; ErrNotFound when absent.
	Delete(ctx context.Context, partition models.Partition, id string) error

	// Clear removes every record in the partition.
	Clear(ctx context.Context, partition models.Partition) error

	// Usage aggregates size metadata over the given partitions (all of
	// them when none are named).
	Usage(ctx context.Context, partitions ...models.Partition) (Usage, error)
}

// AttachmentConfig selects the storage behavior. "Store raw vs store
// compressed" is this configuration choice, not separate code paths.
type AttachmentConfig struct {
	// CompressOnWrite compresses payloads before storing. When false,
	// raw bytes are stored and CompressedSize equals OriginalSize.
	CompressOnWrite bool

	// SealKey enables at-rest AES-GCM sealing of the stored payload
	// when non-nil. Must be a valid AES key (32 bytes from
	// cryptox.DeriveKey).
	SealKey []byte
}

type attachmentService struct {
	repo     attachments.Repository
	codec    codec.Codec
	cfg      AttachmentConfig
	notifier *Notifier
	log      logging.Logger
}

func NewAttachmentService(repo attachments.Repository, c codec.Codec, cfg AttachmentConfig, notifier *Notifier, log logging.Logger) AttachmentService {
	return &attachmentService{repo: repo, codec: c, cfg: cfg, notifier: notifier, log: log}
}

func (s *attachmentService) Put(ctx context.Context, partition models.Partition, name, mediaType string, raw []byte) (*models.AttachmentRecord, error) {
	if !partition.Valid() {
		return nil, fmt.Errorf("unknown partition %q", partition)
	}

	payload := raw
	if s.cfg.CompressOnWrite {
		compressed, err := s.codec.Compress(raw)
		if err != nil {
			return nil, fmt.Errorf("compress %q: %w", name, err)
		}
		payload = compressed
	}

	nonce := []byte{}
	if s.cfg.SealKey != nil {
		sealed, n, err := cryptox.Seal(payload, s.cfg.SealKey)
		if err != nil {
			return nil, fmt.Errorf("seal %q: %w", name, err)
		}
		payload, nonce = sealed, n
	}

	rec := &models.AttachmentRecord{
		ID:             uuid.NewString(),
		Name:           name,
		MediaType:      mediaType,
		OriginalSize:   int64(len(raw)),
		CompressedSize: int64(len(payload)),
		Payload:        payload,
		Nonce:          nonce,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Insert(ctx, partition, rec); err != nil {
		return nil, fmt.Errorf("store %q: %w", name, err)
	}

	s.log.Info(ctx, "attachment stored",
		"partition", string(partition), "id", rec.ID,
		"original", rec.OriginalSize, "stored", rec.CompressedSize)
	s.notifier.Notify()
	return rec, nil
}

func (s *attachmentService) Get(ctx context.Context, partition models.Partition, id string) (*models.AttachmentRecord, error) {
	return s.repo.GetByID(ctx, partition, id)
}

func (s *attachmentService) List(ctx context.Context, partition models.Partition) ([]models.AttachmentRecord, error) {
	return s.repo.GetAll(ctx, partition)
}

func (s *attachmentService) Reconstruct(ctx context.Context, rec *models.AttachmentRecord) ([]byte, error) {
	payload := rec.Payload

	if len(rec.Nonce) > 0 {
		if s.cfg.SealKey == nil {
			return nil, fmt.Errorf("attachment %s is sealed but no key is configured: %w", rec.ID, common.ErrCorruptPayload)
		}
		opened, err := cryptox.Open(payload, rec.Nonce, s.cfg.SealKey)
		if err != nil {
			return nil, fmt.Errorf("unseal attachment %s: %v: %w", rec.ID, err, common.ErrCorruptPayload)
		}
		payload = opened
	}

	if s.cfg.CompressOnWrite {
		raw, err := s.codec.Decompress(payload)
		if err != nil {
			return nil, fmt.Errorf("reconstruct attachment %s (%s): %w", rec.ID, rec.MediaType, err)
		}
		payload = raw
	}

	return payload, nil
}

func (s *attachmentService) Delete(ctx context.Context, partition models.Partition, id string) error {
	if err := s.repo.DeleteByID(ctx, partition, id); err != nil {
		return err
	}
	s.log.Info(ctx, "attachment deleted", "partition", string(partition), "id", id)
	s.notifier.Notify()
	return nil
}

func (s *attachmentService) Clear(ctx context.Context, partition models.Partition) error {
	if err := s.repo.Clear(ctx, partition); err != nil {
		return err
	}
	s.log.Info(ctx, "partition cleared", "partition", string(partition))
	s.notifier.Notify()
	return nil
}

func (s *attachmentService) Usage(ctx context.Context, partitions ...models.Partition) (Usage, error) {
	if len(partitions) == 0 {
		partitions = models.Partitions()
	}

	var total Usage
	for _, p := range partitions {
		records, err := s.repo.GetAll(ctx, p)
		if err != nil {
			return Usage{}, fmt.Errorf("usage of %s: %w", p, err)
		}
		total = total.Add(Sum(records))
	}
	return total, nil
}
