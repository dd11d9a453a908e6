package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "png", data: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), want: "image/png"},
		{name: "jpeg", data: []byte("\xff\xd8\xff\xe0\x00\x10JFIF"), want: "image/jpeg"},
		{name: "gif", data: []byte("GIF89a\x01\x00"), want: "image/gif"},
		{name: "tiff little endian", data: []byte("II*\x00\x08\x00\x00\x00"), want: "image/tiff"},
		{name: "tiff big endian", data: []byte("MM\x00*\x00\x00\x00\x08"), want: "image/tiff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat_Rejects(t *testing.T) {
	for _, data := range [][]byte{[]byte("%PDF-1.7"), []byte("just text"), {}} {
		_, err := DetectFormat(data)
		require.ErrorIs(t, err, ErrUnsupportedImage)
	}
}
