package qrcode

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode"

	"campuscart/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

// DefaultBaseURL is the click-to-chat prefix encoded in contact QR codes.
const DefaultBaseURL = "https://wa.me/"

const pngDataURLPrefix = "data:image/png;base64,"

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              baseURL,
	}
}

// GenerateContactQR generates a click-to-chat QR code for a WhatsApp contact
func (s *qrcodeService) GenerateContactQR(whatsapp string) (string, error) {
	number := digitsOnly(whatsapp)
	if number == "" {
		return "", fmt.Errorf("whatsapp contact %q has no digits", whatsapp)
	}

	// Generate QR code
	qrCode, err := qrcode.New(s.baseURL+number, s.errorCorrectionLevel)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Generate PNG image
	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(pngBytes), nil
}

// ParseContactQR parses QR code data and returns the WhatsApp number
func (s *qrcodeService) ParseContactQR(payload string) (string, error) {
	number, ok := strings.CutPrefix(strings.TrimSpace(payload), s.baseURL)
	if !ok {
		return "", fmt.Errorf("invalid QR code payload: %s", payload)
	}

	number, _, _ = strings.Cut(number, "?")
	if number == "" || digitsOnly(number) != number {
		return "", fmt.Errorf("invalid WhatsApp number in QR code: %s", number)
	}

	return number, nil
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}

		return -1
	}, s)
}
