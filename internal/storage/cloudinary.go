package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"catalog-api/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// uploadAPI is the part of the Cloudinary upload API the store uses.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStore keeps product images in a Cloudinary folder.
type CloudinaryStore struct {
	api    uploadAPI
	folder string
	logger *zap.Logger
}

// NewCloudinaryStore connects with CLOUDINARY_URL when set, otherwise with the separate credentials.
func NewCloudinaryStore(cfg config.StorageConfig, logger *zap.Logger) (*CloudinaryStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)

	switch {
	case cfg.HasURL():
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
	case cfg.HasParams():
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	default:
		return nil, errors.New("cloudinary credentials not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return newCloudinaryStore(&cld.Upload, cfg.Folder, logger), nil
}

func newCloudinaryStore(client uploadAPI, folder string, logger *zap.Logger) *CloudinaryStore {
	return &CloudinaryStore{
		api:    client,
		folder: strings.Trim(folder, "/"),
		logger: logger,
	}
}

// Upload stores body under key and returns the secure delivery URL. An image
// already stored under key is never replaced; the upload fails instead.
func (s *CloudinaryStore) Upload(ctx context.Context, key string, body io.Reader) (string, error) {
	publicID := s.publicID(key)

	resp, err := s.api.Upload(ctx, body, uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "image",
		Overwrite:    api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to cloudinary: %w", key, err)
	}
	if resp == nil {
		return "", fmt.Errorf("failed to upload %s to cloudinary: empty response", key)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("failed to upload %s to cloudinary: %s", key, resp.Error.Message)
	}
	if existingAsset(resp.Response) {
		return "", fmt.Errorf("failed to upload %s to cloudinary: public id %s already in use", key, publicID)
	}

	publicURL := resp.SecureURL
	if publicURL == "" {
		publicURL = resp.URL
	}
	if publicURL == "" {
		return "", fmt.Errorf("failed to upload %s to cloudinary: no delivery URL returned", key)
	}

	s.logger.Debug("Image uploaded",
		zap.String("key", key),
		zap.String("public_id", resp.PublicID),
	)
	return publicURL, nil
}

// Remove destroys the image stored under key. Keys may carry the delivery
// format extension; Cloudinary public ids do not.
func (s *CloudinaryStore) Remove(ctx context.Context, key string) error {
	publicID := s.publicID(key)

	resp, err := s.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from cloudinary: %w", publicID, err)
	}
	if resp == nil {
		return fmt.Errorf("failed to delete %s from cloudinary: empty response", publicID)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("failed to delete %s from cloudinary: %s", publicID, resp.Error.Message)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("failed to delete %s from cloudinary: %s", publicID, resp.Result)
	}

	s.logger.Debug("Image removed", zap.String("public_id", publicID), zap.String("result", resp.Result))
	return nil
}

func (s *CloudinaryStore) publicID(key string) string {
	id := strings.TrimSuffix(key, path.Ext(key))
	if s.folder == "" {
		return id
	}
	return s.folder + "/" + id
}

// existingAsset reports the "existing" flag Cloudinary sets when overwrite is
// off and the public id is taken. The SDK only exposes it in the raw response.
func existingAsset(raw interface{}) bool {
	if ptr, ok := raw.(*interface{}); ok && ptr != nil {
		raw = *ptr
	}
	fields, ok := raw.(map[string]interface{})
	if !ok {
		return false
	}
	existing, _ := fields["existing"].(bool)
	return existing
}
