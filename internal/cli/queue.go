package cli

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"offstash/internal/models"
)

// parseMetadata splits "name=value" lines into a map. Lines without '='
// are rejected.
func parseMetadata(lines []string) (map[string]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	md := make(map[string]string, len(lines))
	for _, line := range lines {
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid metadata line %q", line)
		}
		md[name] = value
	}
	return md, nil
}

// Queue enqueues a local file for delivery to the sync endpoint. The
// item stays queued until a drain confirms delivery.
func (a *App) Queue(ctx context.Context, args []string) error {
	path, data, mediaType, err := a.readLocalFile(args, "Enter file path to queue")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	kind, err := models.KindForMediaType(mediaType)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	lines, err := GetMetadata(a.reader)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	metadata, err := parseMetadata(lines)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	item, err := a.queue.Enqueue(ctx, kind, filepath.Base(path), data, metadata)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Queued %s (%s, id %s)\n", item.FileName, kind, item.ID)
	return nil
}

// Pending lists the items awaiting delivery, oldest first.
func (a *App) Pending(ctx context.Context) error {
	items, err := a.queue.Pending(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("pending (%d):\n", len(items))
	for _, item := range items {
		fmt.Printf("  %s  %s  %s  %s\n",
			item.ID, item.Kind, item.FileName,
			item.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// Sync drains the queue now and reports the result.
func (a *App) Sync(ctx context.Context) error {
	report, err := a.queue.Drain(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	switch {
	case report.Skipped:
		fmt.Println("Sync already in progress")
	case report.FailedID != "":
		fmt.Printf("Delivered %d item(s), stopped at %s: %v\n", report.Processed, report.FailedID, report.Reason)
	default:
		fmt.Printf("Delivered %d item(s)\n", report.Processed)
	}
	return nil
}
