package uploadPhotos

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stayBooker/internal/http-server/handlers/upload/uploadPhotos/mocks"
	"stayBooker/internal/lib/logger/handlers/slogdiscard"
	"stayBooker/internal/media"
)

func multipartBody(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, name := range names {
		part, err := writer.CreateFormFile(FormField, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image bytes of " + name))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func filenames(names ...string) interface{} {
	return mock.MatchedBy(func(files []*multipart.FileHeader) bool {
		if len(files) != len(names) {
			return false
		}
		for i, fh := range files {
			if fh.Filename != names[i] {
				return false
			}
		}
		return true
	})
}

func TestUploadPhotosHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		files          []string
		mockSetup      func(m *mocks.PhotoUploader)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "Success",
			files: []string{"front.jpg", "garden.png"},
			mockSetup: func(m *mocks.PhotoUploader) {
				m.On("AcceptUploads", filenames("front.jpg", "garden.png")).
					Return([]string{"a1.jpg", "b2.png"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `["a1.jpg","b2.png"]`,
		},
		{
			name:  "Too many files",
			files: []string{"front.jpg"},
			mockSetup: func(m *mocks.PhotoUploader) {
				m.On("AcceptUploads", mock.Anything).
					Return(nil, fmt.Errorf("media.AcceptUploads: %w", media.ErrTooManyFiles))
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedBody:   `{"status":"Error","message":"too many files"}`,
		},
		{
			name:  "Disk failure",
			files: []string{"front.jpg"},
			mockSetup: func(m *mocks.PhotoUploader) {
				m.On("AcceptUploads", mock.Anything).Return(nil, errors.New("read-only file system"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","message":"failed to store uploads"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			uploader := mocks.NewPhotoUploader(t)
			tc.mockSetup(uploader)

			handler := New(logger, uploader, 1<<20)

			body, contentType := multipartBody(t, tc.files...)

			req, err := http.NewRequest(http.MethodPost, "/upload", body)
			require.NoError(t, err)
			req.Header.Set("Content-Type", contentType)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}

func TestUploadPhotosHandler_NotMultipart(t *testing.T) {
	t.Parallel()

	uploader := mocks.NewPhotoUploader(t)
	handler := New(slogdiscard.NewDiscardLogger(), uploader, 1<<20)

	req, err := http.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(`{"photos":[]}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"status":"Error","message":"failed to parse multipart form"}`, rr.Body.String())
}
