package service

// QRCodeService renders QR codes.
type QRCodeService interface {
	// GeneratePNG encodes content as a PNG QR code.
	GeneratePNG(content string) ([]byte, error)
}
