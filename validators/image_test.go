package validators

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}

func makeFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func TestImageValidator_ValidPNG(t *testing.T) {
	viper.Set("upload.max_size", int64(5<<20))

	fh := makeFileHeader(t, "cat.png", "image/png", pngMagic)

	code, f, err := ImageValidator(fh)
	require.NoError(t, err)
	require.Zero(t, code)
	defer f.Close()

	// The file must come back rewound so the upload reads all of it
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, data)
}

func TestImageValidator_SpoofedContentType(t *testing.T) {
	viper.Set("upload.max_size", int64(5<<20))

	// Declares PNG but carries plain text
	fh := makeFileHeader(t, "evil.png", "image/png", []byte("#!/bin/sh\nrm -rf /\n"))

	code, _, err := ImageValidator(fh)
	assert.ErrorIs(t, err, ErrFileTypeUnsupported)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestImageValidator_DeclaredNonImage(t *testing.T) {
	viper.Set("upload.max_size", int64(5<<20))

	fh := makeFileHeader(t, "doc.pdf", "application/pdf", pngMagic)

	code, _, err := ImageValidator(fh)
	assert.ErrorIs(t, err, ErrFileTypeUnsupported)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestImageValidator_TooLarge(t *testing.T) {
	viper.Set("upload.max_size", int64(8))

	fh := makeFileHeader(t, "big.png", "image/png", pngMagic)

	code, _, err := ImageValidator(fh)
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
}

func TestImageValidator_LongFileName(t *testing.T) {
	viper.Set("upload.max_size", int64(5<<20))

	fh := makeFileHeader(t, strings.Repeat("a", 300)+".png", "image/png", pngMagic)

	code, _, err := ImageValidator(fh)
	assert.ErrorIs(t, err, ErrFileNameTooLong)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestImageValidator_NoFile(t *testing.T) {
	code, _, err := ImageValidator(nil)
	assert.ErrorIs(t, err, ErrNoFile)
	assert.Equal(t, http.StatusBadRequest, code)
}
