package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeUploader fails any file whose name contains "bad".
type fakeUploader struct {
	calls int
}

func (f *fakeUploader) Upload(_ context.Context, data []byte, folder string) (string, error) {
	f.calls++
	if strings.Contains(string(data), "bad") {
		return "", errors.New("upstream rejected file")
	}
	return fmt.Sprintf("https://cdn.example.com/%s/%d", folder, f.calls), nil
}

func TestUploadAllCollectsEveryURL(t *testing.T) {
	fake := &fakeUploader{}
	files := []UploadFile{
		{Name: "a.jpg", Data: []byte("a")},
		{Name: "b.jpg", Data: []byte("b")},
		{Name: "c.jpg", Data: []byte("c")},
	}

	urls, failed := UploadAll(context.Background(), fake, files, "hotels")
	assert.Len(t, urls, 3)
	assert.Empty(t, failed)
	assert.Equal(t, 3, fake.calls)
}

func TestUploadAllKeepsGoingPastFailures(t *testing.T) {
	fake := &fakeUploader{}
	files := []UploadFile{
		{Name: "a.jpg", Data: []byte("a")},
		{Name: "b.jpg", Data: []byte("bad")},
		{Name: "c.jpg", Data: []byte("c")},
	}

	urls, failed := UploadAll(context.Background(), fake, files, "hotels")
	assert.Len(t, urls, 2)
	assert.Len(t, failed, 1)
	assert.Equal(t, "b.jpg", failed[0].Name)
	assert.Error(t, failed[0].Err)
	// Every file is attempted even after a failure.
	assert.Equal(t, 3, fake.calls)
}

func TestUploadAllEmptyBatch(t *testing.T) {
	fake := &fakeUploader{}

	urls, failed := UploadAll(context.Background(), fake, nil, "hotels")
	assert.Empty(t, urls)
	assert.Empty(t, failed)
	assert.Zero(t, fake.calls)
}
