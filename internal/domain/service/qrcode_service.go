// Package service declares capabilities the domain needs from infrastructure.
package service

// QRCodeService generates and reads the contact QR codes shown on listings.
type QRCodeService interface {
	// GenerateContactQR returns a PNG QR code that opens a WhatsApp chat with
	// the given number, encoded as a data URL so it can be stored on an item.
	GenerateContactQR(whatsapp string) (string, error)

	// ParseContactQR extracts the WhatsApp number from the QR payload.
	ParseContactQR(payload string) (string, error)
}
