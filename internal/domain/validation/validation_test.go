package validation

import (
	"math"
	"testing"

	domainerrors "campuscart/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{email: "admin@campuscart.com", valid: true},
		{email: "a.b@uni.ac.in", valid: true},
		{email: "", valid: false},
		{email: "no-at-sign.com", valid: false},
		{email: "user@nodot", valid: false},
		{email: "with space@campus.edu", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := Email(tt.email)
			if tt.valid {
				assert.NoError(t, err)

				return
			}
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestPhoneAndWhatsApp(t *testing.T) {
	assert.NoError(t, Phone(""))
	assert.NoError(t, Phone("9876543210"))
	assert.Error(t, Phone("987654321"))
	assert.Error(t, Phone("98765432ab"))

	assert.NoError(t, WhatsApp(""))
	assert.NoError(t, WhatsApp("+91 98765 43210"))
	assert.Error(t, WhatsApp("12345"))
}

func TestRoleAndCategory(t *testing.T) {
	for _, role := range []string{"buyer", "seller", "admin"} {
		assert.NoError(t, Role(role))
	}
	assert.Error(t, Role(""))
	assert.Error(t, Role("Admin"))

	assert.NoError(t, Category("Hostel"))
	assert.Error(t, Category("Books"))
}

func TestPrice(t *testing.T) {
	assert.NoError(t, Price(0))
	assert.NoError(t, Price(199.99))
	assert.Error(t, Price(-0.01))
	assert.Error(t, Price(math.NaN()))
}

func TestImageURL(t *testing.T) {
	assert.True(t, ImageURL("https://images.example.com/book.jpg"))
	assert.False(t, ImageURL(""))
	assert.False(t, ImageURL("book.jpg"))
}

func TestFilePolicy_File(t *testing.T) {
	policy := DefaultFilePolicy()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	tests := []struct {
		name     string
		mimeType string
		size     int64
		content  []byte
		wantErr  string
	}{
		{name: "pdf", mimeType: "application/pdf", size: 1024},
		{name: "png with content", mimeType: "image/png", size: int64(len(png)), content: png},
		{name: "mime parameters", mimeType: "image/JPEG; charset=binary", size: 10},
		{name: "text", mimeType: "text/plain", size: 10, wantErr: "file type not supported"},
		{name: "too large", mimeType: "application/pdf", size: MaxFileSize + 1, wantErr: "maximum is 10.0 MB"},
		{name: "mislabeled content", mimeType: "image/png", size: 11, content: []byte("hello world"), wantErr: "file content is text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.File(tt.mimeType, tt.size, tt.content)
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
