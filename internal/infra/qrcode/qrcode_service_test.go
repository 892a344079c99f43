package qrcode

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel, "")
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateContactQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	dataURL, err := service.GenerateContactQR("+91 98765 43211")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(dataURL, pngDataURLPrefix))

	qrBytes, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, pngDataURLPrefix))
	require.NoError(t, err)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateContactQR_NoDigits(t *testing.T) {
	service := NewQRCodeService(256, "M", "")

	_, err := service.GenerateContactQR("not a number")
	require.Error(t, err)
}

func TestQRCodeService_ParseContactQR(t *testing.T) {
	service := NewQRCodeService(256, "M", "https://wa.me")

	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{name: "plain link", payload: "https://wa.me/919876543211", want: "919876543211"},
		{name: "link with text", payload: "https://wa.me/919876543211?text=hi", want: "919876543211"},
		{name: "other host", payload: "https://example.com/919876543211", wantErr: true},
		{name: "letters in number", payload: "https://wa.me/98abc", wantErr: true},
		{name: "empty number", payload: "https://wa.me/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ParseContactQR(tt.payload)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
