package cli

import (
	"context"
	"fmt"
	"log"

	"offstash/internal/models"
	"offstash/internal/services"
)

// Usage prints per-partition and total size accounting.
func (a *App) Usage(ctx context.Context) error {
	var total services.Usage

	for _, p := range models.Partitions() {
		u, err := a.attachments.Usage(ctx, p)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
		fmt.Printf("%s: %s stored (%s original)\n",
			p, services.FormatBytes(u.TotalCompressedBytes), services.FormatBytes(u.TotalOriginalBytes))
		total = total.Add(u)
	}

	fmt.Printf("total: %s stored (%s original), ratio %.2f\n",
		services.FormatBytes(total.TotalCompressedBytes),
		services.FormatBytes(total.TotalOriginalBytes),
		total.Ratio())
	return nil
}

// Status prints connectivity state and the number of items awaiting
// delivery.
func (a *App) Status(ctx context.Context) error {
	count, err := a.queue.PendingCount(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("mode: %s\n", a.Mode)
	fmt.Printf("pending: %d\n", count)
	return nil
}
