/*
Package handler provides the HTTP handlers and routing setup for the
InstaVista server.

This file holds the shared image upload pipeline: size check, normalization,
and object storage write.
*/
package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/TaiefArnob/InstaVista/internal/app/imaging"
	"github.com/TaiefArnob/InstaVista/internal/pkg/errs"
	"github.com/TaiefArnob/InstaVista/internal/pkg/logx"
	"github.com/TaiefArnob/InstaVista/internal/pkg/randx"
)

// storeImage normalizes one uploaded image and writes it to object storage
// under the given folder. It returns the stored image's public URL.
func storeImage(r *http.Request, deps *AppDeps, header *multipart.FileHeader, folder string) (string, *errs.CustomError) {
	if header.Size > imaging.MaxImageBytes {
		return "", errs.NewError(errs.ErrFileTooLarge)
	}

	file, err := header.Open()
	if err != nil {
		logx.Error(err, "Failed to open uploaded file", "filename", header.Filename)
		return "", errs.NewError(errs.ErrFormParseFailed)
	}
	defer file.Close()

	normalized, err := imaging.Normalize(file)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return "", errs.NewError(errs.ErrUnsupportedImageType)
		}

		logx.Error(err, "Image normalization failed", "filename", header.Filename)
		return "", errs.NewError(errs.ErrImageProcessingFailed)
	}

	key := randx.ImageKey(folder)

	url, err := deps.StorageService.Upload(r.Context(), key, imaging.ContentType, bytes.NewReader(normalized))
	if err != nil {
		logx.Error(err, "Failed to upload image to object storage", "key", key)
		return "", errs.NewError(errs.ErrFileStorageFailed)
	}

	return url, nil
}

// storedImageKey maps a public URL produced by storeImage back to its
// object key. URLs outside the configured public base yield "".
func storedImageKey(deps *AppDeps, url string) string {
	base := strings.TrimRight(deps.Config.S3PublicBaseURL, "/") + "/"
	if !strings.HasPrefix(url, base) {
		return ""
	}

	return strings.TrimPrefix(url, base)
}

// deleteStoredImages removes stored images from object storage in the
// background. The documents referencing them are already gone or updated,
// so failures are logged and swallowed.
func deleteStoredImages(deps *AppDeps, urls ...string) {
	keys := make([]string, 0, len(urls))
	for _, url := range urls {
		if key := storedImageKey(deps, url); key != "" {
			keys = append(keys, key)
		}
	}

	if len(keys) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		for _, key := range keys {
			if err := deps.StorageService.Delete(ctx, key); err != nil {
				logx.Warn("Failed to delete stored image", "key", key, "error", err)
			}
		}
	}()
}
