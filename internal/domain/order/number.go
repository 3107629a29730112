package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	SaleNumberPrefix   = "SO"
	RentalNumberPrefix = "RN"
)

// GenerateNumber builds a human-facing order number {PREFIX}-{YYYYMMDD}-{4 hex}.
// The hex tail is random, not unique by construction; callers persist under a
// unique constraint and retry on collision.
func GenerateNumber(prefix string, now time.Time) string {
	var b [2]byte
	_, _ = rand.Read(b[:])
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), strings.ToUpper(hex.EncodeToString(b[:])))
}
