package generation

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompressor struct {
	err error
}

func (c stubCompressor) Compress([]byte) ([]byte, string, error) {
	if c.err != nil {
		return nil, "", c.err
	}
	return []byte("jpeg-bytes"), "image/jpeg", nil
}

func TestDecodeBase64Image(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngBytes)

	img, err := DecodeBase64Image(encoded, "image/png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, img.Data)

	img, err = DecodeBase64Image("data:image/webp;base64,"+encoded, "")
	require.NoError(t, err)
	assert.Equal(t, "image/webp", img.MIMEType)

	img, err = DecodeBase64Image(strings.TrimRight(encoded, "="), "")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, img.Data)

	_, err = DecodeBase64Image("  ", "")
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = DecodeBase64Image("%%%", "")
	assert.Error(t, err)
}

func TestExtensionForMIME(t *testing.T) {
	tests := map[string]string{
		"image/png":                "png",
		"image/jpeg":               "jpg",
		"image/jpg":                "jpg",
		"IMAGE/WEBP":               "webp",
		"image/gif":                "gif",
		"image/png; charset=utf-8": "png",
		"application/octet-stream": "png",
		"":                         "png",
	}
	for mime, want := range tests {
		assert.Equal(t, want, ExtensionForMIME(mime), mime)
	}
}

func TestImageWriter_SniffsMissingMIME(t *testing.T) {
	store := newFakeImageStore()
	w := NewImageWriter(store, nil, nil, nopLogger())

	stored, err := w.Write(context.Background(), &GeneratedImage{Data: pngBytes})
	require.NoError(t, err)
	assert.Equal(t, "image/png", stored.MIMEType)
	assert.True(t, strings.HasSuffix(stored.Filename, ".png"))
	assert.Equal(t, GeneratedImagesDir+"/"+stored.Filename, stored.RelativePath)
	assert.Equal(t, "/storage/generated_images/"+stored.Filename, stored.URL)

	name, ok := FilenameFromPath(stored.URL)
	assert.True(t, ok)
	assert.Equal(t, stored.Filename, name)
}

func TestImageWriter_Compression(t *testing.T) {
	store := newFakeImageStore()
	stored, err := NewImageWriter(store, stubCompressor{}, nil, nopLogger()).Write(context.Background(), &GeneratedImage{Data: pngBytes, MIMEType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", stored.MIMEType)
	assert.True(t, strings.HasSuffix(stored.Filename, ".jpg"))
	assert.Equal(t, []byte("jpeg-bytes"), store.saved[stored.Filename])

	stored, err = NewImageWriter(store, stubCompressor{err: errors.New("bad image")}, nil, nopLogger()).Write(context.Background(), &GeneratedImage{Data: pngBytes, MIMEType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, pngBytes, store.saved[stored.Filename])
}

func TestImageWriter_EmptyImage(t *testing.T) {
	_, err := NewImageWriter(newFakeImageStore(), nil, nil, nopLogger()).Write(context.Background(), &GeneratedImage{})
	assert.ErrorIs(t, err, ErrEmptyImage)
}
