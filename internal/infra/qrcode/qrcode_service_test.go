package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"solar/config"

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
		{"Default size", 0, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GeneratePNG(t *testing.T) {
	service := NewQRCodeService(256, "M")

	qrBytes, err := service.GeneratePNG("https://solar.example.com/api/invoices/0190a0c4")
	require.NoError(t, err)
	require.NotEmpty(t, qrBytes)

	// PNG magic number
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
}

func TestQRCodeService_GeneratePNG_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, "M")

			qrBytes, err := service.GeneratePNG("INV-20260101-ABCDEF")
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(qrBytes))
			require.NoError(t, err)
			assert.Equal(t, tt.size, img.Bounds().Dx())
		})
	}
}

func TestQRCodeService_GeneratePNG_EmptyContent(t *testing.T) {
	service := NewQRCodeService(256, "M")

	_, err := service.GeneratePNG("")
	assert.Error(t, err)
}

func TestNew_UsesConfig(t *testing.T) {
	cfg := &config.Config{QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H"}}

	service := New(cfg).(*qrcodeService)
	assert.Equal(t, 128, service.size)

	service = New(&config.Config{}).(*qrcodeService)
	assert.Equal(t, defaultSize, service.size)
}
