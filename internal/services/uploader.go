package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadFile is a single in-memory file received from a multipart form.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadFailure records a file that could not be uploaded.
type UploadFailure struct {
	Name string
	Err  error
}

// Uploader pushes a file buffer to the external image host and returns its
// stable URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
}

// UploadAll uploads every file, collecting failures instead of aborting: a
// batch of N files may yield fewer than N URLs. Callers log the failures and
// proceed with whatever succeeded.
func UploadAll(ctx context.Context, u Uploader, files []UploadFile, folder string) (urls []string, failed []UploadFailure) {
	for _, f := range files {
		url, err := u.Upload(ctx, f.Data, folder)
		if err != nil {
			log.Printf("Failed to upload %s: %v", f.Name, err)
			failed = append(failed, UploadFailure{Name: f.Name, Err: err})
			continue
		}
		urls = append(urls, url)
	}
	return urls, failed
}

// CloudinaryUploader uploads to Cloudinary under a configured base folder.
type CloudinaryUploader struct {
	cld        *cloudinary.Cloudinary
	baseFolder string
}

// NewCloudinaryUploader builds an uploader from a CLOUDINARY_URL-style
// credential string.
func NewCloudinaryUploader(cloudinaryURL, baseFolder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryUploader{cld: cld, baseFolder: baseFolder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       path.Join(u.baseFolder, folder),
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}
