package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offstash/internal/codec"
	"offstash/internal/common"
	"offstash/internal/cryptox"
	"offstash/internal/logging"
	"offstash/internal/models"
	"offstash/internal/storage"
)

func newService(t *testing.T, cfg AttachmentConfig) (AttachmentService, *storage.Repositories, *Notifier) {
	t.Helper()
	db, repos, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	notifier := NewNotifier()
	svc := NewAttachmentService(repos.Attachments, codec.NewZstd(), cfg, notifier, logging.NewNopLogger())
	return svc, repos, notifier
}

func TestPut_CompressedRoundTrip(t *testing.T) {
	svc, _, _ := newService(t, AttachmentConfig{CompressOnWrite: true})
	ctx := context.Background()

	raw := bytes.Repeat([]byte("compressible photo data "), 4096)
	rec, err := svc.Put(ctx, models.PartitionImages, "shot.jpg", "image/jpeg", raw)
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, int64(len(raw)), rec.OriginalSize)
	assert.Equal(t, int64(len(rec.Payload)), rec.CompressedSize)
	assert.Less(t, rec.CompressedSize, rec.OriginalSize)

	stored, err := svc.Get(ctx, models.PartitionImages, rec.ID)
	require.NoError(t, err)

	restored, err := svc.Reconstruct(ctx, stored)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(raw, restored))
}

func TestPut_RawModeStoresBytesAsIs(t *testing.T) {
	svc, _, _ := newService(t, AttachmentConfig{CompressOnWrite: false})
	ctx := context.Background()

	raw := []byte("already-compressed jpeg bytes")
	rec, err := svc.Put(ctx, models.PartitionImages, "shot.jpg", "image/jpeg", raw)
	require.NoError(t, err)

	assert.Equal(t, rec.OriginalSize, rec.CompressedSize)
	assert.Equal(t, raw, rec.Payload)

	restored, err := svc.Reconstruct(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, raw, restored)
}

func TestPut_SealedAtRest(t *testing.T) {
	key := cryptox.DeriveKey([]byte("passphrase"), []byte("stash-salt"))
	svc, repos, _ := newService(t, AttachmentConfig{CompressOnWrite: true, SealKey: key})
	ctx := context.Background()

	raw := bytes.Repeat([]byte("secret scan "), 1024)
	rec, err := svc.Put(ctx, models.PartitionPDFs, "scan.pdf", "application/pdf", raw)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.Nonce)
	assert.NotContains(t, string(rec.Payload), "secret scan")

	stored, err := repos.Attachments.GetByID(ctx, models.PartitionPDFs, rec.ID)
	require.NoError(t, err)

	restored, err := svc.Reconstruct(ctx, stored)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(raw, restored))
}

func TestReconstruct_WrongKeyIsCorruptPayload(t *testing.T) {
	key := cryptox.DeriveKey([]byte("passphrase"), []byte("stash-salt"))
	svc, repos, _ := newService(t, AttachmentConfig{CompressOnWrite: true, SealKey: key})
	ctx := context.Background()

	rec, err := svc.Put(ctx, models.PartitionPDFs, "scan.pdf", "application/pdf", []byte("bytes"))
	require.NoError(t, err)

	other := cryptox.DeriveKey([]byte("wrong"), []byte("stash-salt"))
	otherSvc := NewAttachmentService(repos.Attachments, codec.NewZstd(),
		AttachmentConfig{CompressOnWrite: true, SealKey: other}, NewNotifier(), logging.NewNopLogger())

	stored, err := repos.Attachments.GetByID(ctx, models.PartitionPDFs, rec.ID)
	require.NoError(t, err)

	_, err = otherSvc.Reconstruct(ctx, stored)
	assert.ErrorIs(t, err, common.ErrCorruptPayload)
}

func TestReconstruct_CorruptRecordDoesNotBlockListing(t *testing.T) {
	svc, repos, _ := newService(t, AttachmentConfig{CompressOnWrite: true})
	ctx := context.Background()

	good, err := svc.Put(ctx, models.PartitionImages, "good.png", "image/png", []byte("good bytes"))
	require.NoError(t, err)

	// store a record whose payload is not a valid compressed stream
	bad := &models.AttachmentRecord{
		ID: "bad", Name: "bad.png", MediaType: "image/png",
		OriginalSize: 9, CompressedSize: 7,
		Payload: []byte("garbage"), Nonce: []byte{}, CreatedAt: good.CreatedAt,
	}
	require.NoError(t, repos.Attachments.Insert(ctx, models.PartitionImages, bad))

	records, err := svc.List(ctx, models.PartitionImages)
	require.NoError(t, err)
	require.Len(t, records, 2, "listing still shows metadata for unreconstructable records")

	var failed, succeeded int
	for i := range records {
		if _, err := svc.Reconstruct(ctx, &records[i]); err != nil {
			assert.ErrorIs(t, err, common.ErrCorruptPayload)
			failed++
		} else {
			succeeded++
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, succeeded)
}

func TestPut_UnknownPartitionRejected(t *testing.T) {
	svc, _, _ := newService(t, AttachmentConfig{CompressOnWrite: true})
	_, err := svc.Put(context.Background(), "videos", "v.mp4", "video/mp4", []byte("x"))
	assert.Error(t, err)
}

func TestMutations_NotifySubscribers(t *testing.T) {
	svc, _, notifier := newService(t, AttachmentConfig{CompressOnWrite: true})
	ctx := context.Background()

	var fired int
	id := notifier.Subscribe(func() { fired++ })

	rec, err := svc.Put(ctx, models.PartitionImages, "a.png", "image/png", []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	require.NoError(t, svc.Delete(ctx, models.PartitionImages, rec.ID))
	assert.Equal(t, 2, fired)

	require.NoError(t, svc.Clear(ctx, models.PartitionImages))
	assert.Equal(t, 3, fired)

	notifier.Unsubscribe(id)
	_, err = svc.Put(ctx, models.PartitionImages, "b.png", "image/png", []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, 3, fired)
}

func TestUsage_AcrossPartitions(t *testing.T) {
	svc, repos, _ := newService(t, AttachmentConfig{CompressOnWrite: true})
	ctx := context.Background()

	seed := []struct {
		partition  models.Partition
		original   int64
		compressed int64
	}{
		{models.PartitionImages, 100, 40},
		{models.PartitionImages, 200, 80},
		{models.PartitionPDFs, 300, 120},
	}
	for i, s := range seed {
		rec := &models.AttachmentRecord{
			ID: string(rune('a' + i)), Name: "n", MediaType: "image/png",
			OriginalSize: s.original, CompressedSize: s.compressed,
			Payload: make([]byte, s.compressed), Nonce: []byte{},
		}
		require.NoError(t, repos.Attachments.Insert(ctx, s.partition, rec))
	}

	u, err := svc.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(600), u.TotalOriginalBytes)
	assert.Equal(t, int64(240), u.TotalCompressedBytes)
	assert.InDelta(t, 0.4, u.Ratio(), 1e-9)

	images, err := svc.Usage(ctx, models.PartitionImages)
	require.NoError(t, err)
	assert.Equal(t, int64(300), images.TotalOriginalBytes)
}
