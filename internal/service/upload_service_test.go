package service

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSigner struct {
	bucket  string
	object  string
	expires time.Duration
}

func (s *fakeSigner) PresignedPutObject(_ context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error) {
	s.bucket = bucketName
	s.object = objectName
	s.expires = expires
	return url.Parse("https://storage.example.com/" + bucketName + "/" + objectName + "?sig=abc")
}

func TestCreateUploadURL(t *testing.T) {
	req := require.New(t)

	signer := &fakeSigner{}
	svc := NewUploadService(signer, "muud-uploads")
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	signed, err := svc.CreateUploadURL(context.Background(), "photo.png")
	req.NoError(err)

	req.Equal("muud-uploads", signer.bucket)
	req.Equal("uploads/1700000000000-photo.png", signer.object)
	req.Equal(uploadURLLifetime, signer.expires)
	req.Equal("uploads/1700000000000-photo.png", signed.Key)
	req.Contains(signed.UploadURL, "storage.example.com")
}
