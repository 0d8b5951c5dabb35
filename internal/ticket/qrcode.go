// Package ticket renders boarding-pass QR codes for bookings.
package ticket

import (
	"fmt"
	"strings"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// Payload is the text encoded in a boarding-pass QR code.
func Payload(b *domain.Booking) string {
	return fmt.Sprintf("CASHFLY|%s|%s|%s|%s", b.ID, b.Flight, strings.Join(b.Seats, ","), b.Name)
}

// PNG encodes the booking payload. Sizes below 64 px fall back to DefaultSize.
func PNG(b *domain.Booking, size int) ([]byte, error) {
	if size < 64 {
		size = DefaultSize
	}
	png, err := qrcode.Encode(Payload(b), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
