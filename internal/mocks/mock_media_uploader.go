package mocks

import "context"

// MockMediaUploader implements domain.MediaUploader interface for testing
type MockMediaUploader struct {
	UploadFunc func(ctx context.Context, data []byte, folder string) (string, string, error)
}

// NewMockMediaUploader creates a new MockMediaUploader with default behaviors
func NewMockMediaUploader() *MockMediaUploader {
	return &MockMediaUploader{}
}

func (m *MockMediaUploader) Upload(ctx context.Context, data []byte, folder string) (string, string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, data, folder)
	}
	return "https://cdn.example.com/" + folder + "/mock", "mock_public_id", nil
}
