package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Delete removes a single attachment by id.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Enter record id to delete")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	_, partition, err := a.findRecord(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.attachments.Delete(ctx, partition, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Deleted %s from %s\n", id, partition)
	return nil
}

// Clear removes every attachment in the named partition, or in all
// partitions when none is named. Asks for confirmation first.
func (a *App) Clear(ctx context.Context, args []string) error {
	parts, err := selectPartitions(args)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	answer, err := GetSimpleText(a.reader, "This removes the stored attachments. Type 'yes' to continue", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if answer != "yes" {
		fmt.Println("Cancelled")
		return nil
	}

	for _, p := range parts {
		if err := a.attachments.Clear(ctx, p); err != nil {
			log.Printf("error: %v", err)
			return err
		}
		fmt.Printf("Cleared %s\n", p)
	}
	return nil
}
