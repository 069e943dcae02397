package cli

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"offstash/internal/models"
	"offstash/internal/services"
)

// mediaTypeForPath derives the media type from the file extension.
func mediaTypeForPath(path string) string {
	mt := mime.TypeByExtension(filepath.Ext(path))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}

// readLocalFile resolves the path argument (or prompts for one) and
// returns the file content together with its media type.
func (a *App) readLocalFile(args []string, prompt string) (path string, data []byte, mediaType string, err error) {
	if len(args) > 0 {
		path = args[0]
	} else {
		path, err = GetSimpleText(a.reader, prompt, os.Stdout)
		if err != nil {
			return "", nil, "", err
		}
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return "", nil, "", err
	}

	return path, data, mediaTypeForPath(path), nil
}

// Add stores a local file as an attachment in the partition matching its
// media type.
func (a *App) Add(ctx context.Context, args []string) error {
	path, data, mediaType, err := a.readLocalFile(args, "Enter file path")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	partition, err := models.PartitionForMediaType(mediaType)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	rec, err := a.attachments.Put(ctx, partition, filepath.Base(path), mediaType, data)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Stored %s in %s: %s -> %s (id %s)\n",
		rec.Name, partition,
		services.FormatBytes(rec.OriginalSize), services.FormatBytes(rec.CompressedSize),
		rec.ID)
	return nil
}
