package cli

import (
	"context"
	"fmt"
	"log"

	"offstash/internal/models"
	"offstash/internal/services"
)

// selectPartitions resolves an optional partition name argument. With no
// argument every partition is selected.
func selectPartitions(args []string) ([]models.Partition, error) {
	if len(args) == 0 {
		return models.Partitions(), nil
	}
	p := models.Partition(args[0])
	if !p.Valid() {
		return nil, fmt.Errorf("unknown partition %q", args[0])
	}
	return []models.Partition{p}, nil
}

// List prints the attachments of the selected partitions, newest first.
func (a *App) List(ctx context.Context, args []string) error {
	parts, err := selectPartitions(args)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	for _, p := range parts {
		recs, err := a.attachments.List(ctx, p)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}

		fmt.Printf("%s (%d):\n", p, len(recs))
		for _, rec := range recs {
			fmt.Printf("  %s  %s  %s -> %s  %s\n",
				rec.ID, rec.Name,
				services.FormatBytes(rec.OriginalSize), services.FormatBytes(rec.CompressedSize),
				rec.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	}
	return nil
}
