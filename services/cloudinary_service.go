package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"go.uber.org/zap"

	"github.com/waterlife-shop/waterlife-backend/config"
)

// UploadSignature lets the admin frontend upload straight to Cloudinary.
type UploadSignature struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Folder    string `json:"folder"`
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	UploadURL string `json:"uploadUrl"`
}

type CloudinaryService struct {
	cld    *cloudinary.Cloudinary
	cfg    config.CloudinaryConfig
	logger *zap.Logger
	now    func() time.Time
}

func NewCloudinaryService(cfg config.CloudinaryConfig, logger *zap.Logger) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{cld: cld, cfg: cfg, logger: logger.Named("cloudinary"), now: time.Now}, nil
}

// RootFolder is the folder product media lives under.
func (s *CloudinaryService) RootFolder() string {
	return s.cfg.Folder
}

// SignUpload signs the parameters of a direct upload into folder.
func (s *CloudinaryService) SignUpload(folder string) (UploadSignature, error) {
	ts := s.now().Unix()
	params := url.Values{}
	params.Set("folder", folder)
	params.Set("timestamp", strconv.FormatInt(ts, 10))

	signature, err := api.SignParameters(params, s.cfg.APISecret)
	if err != nil {
		return UploadSignature{}, fmt.Errorf("sign upload: %w", err)
	}
	return UploadSignature{
		CloudName: s.cfg.CloudName,
		APIKey:    s.cfg.APIKey,
		Folder:    folder,
		Timestamp: ts,
		Signature: signature,
		UploadURL: fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", s.cfg.CloudName),
	}, nil
}

// DeleteFolder deletes every asset under folderPath, then the folder itself.
func (s *CloudinaryService) DeleteFolder(ctx context.Context, folderPath string) error {
	if _, err := s.cld.Admin.DeleteAssetsByPrefix(ctx, admin.DeleteAssetsByPrefixParams{
		Prefix: api.CldAPIArray{folderPath},
	}); err != nil {
		return fmt.Errorf("failed to delete assets in folder %s: %w", folderPath, err)
	}

	// Cloudinary usually drops empty folders on its own.
	if _, err := s.cld.Admin.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: folderPath}); err != nil {
		s.logger.Debug("folder not deleted", zap.String("folder", folderPath), zap.Error(err))
	}
	s.logger.Info("deleted media folder", zap.String("folder", folderPath))
	return nil
}
