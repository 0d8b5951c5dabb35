package ticket

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload(t *testing.T) {
	b := &domain.Booking{ID: "b-1", Flight: "f-1", Seats: []string{"1A", "1B"}, Name: "Aisyah"}
	assert.Equal(t, "CASHFLY|b-1|f-1|1A,1B|Aisyah", Payload(b))
}

func TestPNG(t *testing.T) {
	b := &domain.Booking{ID: "b-1", Flight: "f-1", Seats: []string{"1A"}, Name: "Aisyah"}

	data, err := PNG(b, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
}
