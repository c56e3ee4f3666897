package application

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rayafarhadi/text-marketing-app/core"
	"github.com/rayafarhadi/text-marketing-app/helpers"
)

// PublishImage stores the image under its sanitized name and returns the public URL.
// Uploading to an existing key overwrites it.
func PublishImage(ctx context.Context, imageData []byte, desiredName string, imageStore core.ImageStore, logger core.Logger) (string, error) {
	key := helpers.SanitizeFileName(desiredName)
	if key == "" {
		return "", fmt.Errorf("%w: '%s'", core.ErrInvalidImageName, desiredName)
	}
	contentType := helpers.ContentTypeFromFileName(key)

	logger.Info("uploading image key=%s contentType='%s' size=%d", key, contentType, len(imageData))
	if err := imageStore.PutImage(ctx, key, bytes.NewReader(imageData), contentType); err != nil {
		return "", fmt.Errorf("error on upload image: %v", err)
	}

	url := imageStore.PublicURL(key)
	logger.Info("uploaded image to url=%s", url)
	return url, nil
}
