package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"offstash/internal/common"
	"offstash/internal/models"
	"offstash/internal/services"
)

// findRecord looks the id up across every partition.
func (a *App) findRecord(ctx context.Context, id string) (*models.AttachmentRecord, models.Partition, error) {
	for _, p := range models.Partitions() {
		rec, err := a.attachments.Get(ctx, p, id)
		if err == nil {
			return rec, p, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("record %s: %w", id, common.ErrNotFound)
}

// argOrPrompt returns args[0] when present, otherwise reads the value
// interactively.
func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, os.Stdout)
}

// Show prints a single attachment's stored metadata.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter record id to show")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	rec, partition, err := a.findRecord(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println(rec.Name)
	fmt.Printf("  partition: %s\n", partition)
	fmt.Printf("  media type: %s\n", rec.MediaType)
	fmt.Printf("  original: %s\n", services.FormatBytes(rec.OriginalSize))
	fmt.Printf("  stored: %s\n", services.FormatBytes(rec.CompressedSize))
	fmt.Printf("  created: %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// Save reconstructs an attachment's original bytes into a local file.
func (a *App) Save(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter record id to save")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	var path string
	if len(args) > 1 {
		path = args[1]
	} else {
		path, err = GetSimpleText(a.reader, "Enter destination path", os.Stdout)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
	}

	rec, _, err := a.findRecord(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	data, err := a.attachments.Reconstruct(ctx, rec)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Saved %s (%s) to %s\n", rec.Name, services.FormatBytes(int64(len(data))), path)
	return nil
}
