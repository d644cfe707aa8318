package service

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const uploadURLLifetime = 15 * time.Minute

// URLSigner issues presigned PUT URLs; *minio.Client satisfies it.
type URLSigner interface {
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
}

// UploadService hands clients a short-lived URL to upload an object
// directly to the bucket; nothing streams through this backend.
type UploadService struct {
	signer URLSigner
	bucket string
	now    func() time.Time
}

func NewUploadService(signer URLSigner, bucket string) *UploadService {
	return &UploadService{signer: signer, bucket: bucket, now: time.Now}
}

type UploadURL struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
}

func (s *UploadService) CreateUploadURL(ctx context.Context, fileName string) (*UploadURL, error) {
	key := fmt.Sprintf("uploads/%d-%s", s.now().UnixMilli(), fileName)

	signed, err := s.signer.PresignedPutObject(ctx, s.bucket, key, uploadURLLifetime)
	if err != nil {
		return nil, fmt.Errorf("presigning upload url: %w", err)
	}
	return &UploadURL{UploadURL: signed.String(), Key: key}, nil
}
