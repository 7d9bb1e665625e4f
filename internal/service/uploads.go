package service

import (
	"bytes"
	"context"
	"time"

	"catalog-api/internal/storage"

	"golang.org/x/sync/errgroup"
)

// MaxImagesPerProduct caps the files accepted in one create or update.
const MaxImagesPerProduct = 5

// ImageFile is an uploaded file held in memory until it reaches the object store.
type ImageFile struct {
	Filename string
	Data     []byte
}

// uploadImages stores every file concurrently and returns the URLs in input
// order. Keys carry the file's index, so a name repeated within a batch still
// gets its own blob. The first failure cancels the remaining uploads and is
// returned once all of them have settled; blobs stored before the failure are
// left in place.
func uploadImages(ctx context.Context, store storage.ObjectStore, at time.Time, files []ImageFile) ([]string, error) {
	urls := make([]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			url, err := store.Upload(ctx, storage.ObjectKey(at, i, file.Filename), bytes.NewReader(file.Data))
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
