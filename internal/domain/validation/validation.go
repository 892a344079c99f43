// Package validation holds the pure input checks shared by the entity
// constructors: contact details, roles, prices, categories, image URLs and
// attached files. Every check returns a domain validation error naming the
// field, or nil.
package validation

import (
	"regexp"
	"slices"
	"strings"

	domainerrors "campuscart/internal/domain/errors"
	"campuscart/internal/util"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

// MaxFileSize is the largest attachment accepted on an item (10 MiB).
const MaxFileSize int64 = 10 * 1024 * 1024

// AllowedFileTypes lists the attachment MIME types accepted on an item.
var AllowedFileTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/gif",
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("campusemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	return v
}

// Email checks the local@domain.tld shape.
func Email(email string) error {
	if err := validate.Var(email, "campusemail"); err != nil {
		return domainerrors.Validation("email", "must look like local@domain.tld")
	}

	return nil
}

// Phone checks that a phone number is exactly ten digits. Empty means absent.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}
	if err := validate.Var(phone, "len=10,number"); err != nil {
		return domainerrors.Validation("phone", "phone number must be 10 digits")
	}

	return nil
}

// WhatsApp checks that a WhatsApp contact is at least ten characters long.
// Empty means absent.
func WhatsApp(whatsapp string) error {
	if whatsapp == "" {
		return nil
	}
	if err := validate.Var(whatsapp, "min=10"); err != nil {
		return domainerrors.Validation("whatsapp", "whatsapp must be a valid contact string")
	}

	return nil
}

// Role checks membership in the fixed role set.
func Role(role string) error {
	if err := validate.Var(role, "required,oneof=buyer seller admin"); err != nil {
		return domainerrors.Validation("role", "must be one of: buyer, seller, admin")
	}

	return nil
}

// Price rejects negative (and NaN) prices.
func Price(price float64) error {
	if err := validate.Var(price, "gte=0"); err != nil {
		return domainerrors.Validation("price", "price must be a non-negative number")
	}

	return nil
}

// Category checks membership in the fixed listing categories.
func Category(category string) error {
	if err := validate.Var(category, "oneof=Education Hostel Electronics Free"); err != nil {
		return domainerrors.Validation("category", "unknown category")
	}

	return nil
}

// ImageURL reports whether url is an absolute URL usable as an image source.
func ImageURL(url string) bool {
	return validate.Var(url, "required,url") == nil
}

// FilePolicy bounds the attachments an item may carry.
type FilePolicy struct {
	MaxSize      int64
	AllowedTypes []string
}

// DefaultFilePolicy returns the 10 MiB PDF/image policy.
func DefaultFilePolicy() FilePolicy {
	return FilePolicy{
		MaxSize:      MaxFileSize,
		AllowedTypes: slices.Clone(AllowedFileTypes),
	}
}

// File checks the declared MIME type and size of an attachment. When the
// attachment content is available it is sniffed as well, and the detected
// type must also be allowed.
func (p FilePolicy) File(mimeType string, size int64, content []byte) error {
	if !p.allows(mimeType) {
		return domainerrors.Validation("file", "file type not supported, only PDF and images are allowed")
	}
	if size > p.MaxSize {
		return p.tooLarge()
	}
	if len(content) > 0 {
		if int64(len(content)) > p.MaxSize {
			return p.tooLarge()
		}
		detected := mimetype.Detect(content)
		if !p.allows(detected.String()) {
			return domainerrors.Validation("file", "file content is "+detected.String())
		}
	}

	return nil
}

func (p FilePolicy) tooLarge() error {
	return domainerrors.Validation("file", "file size too large, maximum is "+util.FormatBytes(p.MaxSize))
}

func (p FilePolicy) allows(mimeType string) bool {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.TrimSpace(strings.ToLower(base))

	return slices.Contains(p.AllowedTypes, base)
}
