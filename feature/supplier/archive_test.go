package supplier

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketsync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestArchiver_Store(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "marketsync").Return(true, nil)
	client.On("PutObject", mock.Anything, "marketsync", "feeds/20240102T030405Z.zip",
		mock.Anything, int64(4), mock.Anything).Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "marketsync", "feeds")
	a.now = func() time.Time {
		return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	}

	err := a.Store(context.Background(), []byte("data"))
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestArchiver_CreatesMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "marketsync").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "marketsync", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "marketsync", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	a := NewArchiver(client, "marketsync", "")
	err := a.Store(context.Background(), []byte("data"))
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestArchiver_UploadFailure(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "marketsync").Return(true, nil)
	client.On("PutObject", mock.Anything, "marketsync", mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("connection refused"))

	a := NewArchiver(client, "marketsync", "feeds")
	err := a.Store(context.Background(), []byte("data"))
	assert.Error(t, err)
}
