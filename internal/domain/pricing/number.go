package pricing

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// Document number prefixes.
const (
	QuotePrefix   = "QT"
	OrderPrefix   = "ORD"
	InvoicePrefix = "INV"
)

// NewNumber returns PREFIX-YYYYMMDD-XXXXXX with six random upper-case hex digits.
func NewNumber(prefix string, now time.Time) string {
	var b [3]byte
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b[:])

	return prefix + "-" + now.UTC().Format("20060102") + "-" + strings.ToUpper(hex.EncodeToString(b[:]))
}
