package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns a deterministic generator seed for a date and board shape
// using HMAC(salt, "YYYY-MM-DD|size|black|white"). Everyone playing the daily
// board with the same settings on the same day memorizes the same board.
func Seed(date time.Time, salt string, size, black, white int) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	fmt.Fprintf(h, "%s|%d|%d|%d", DateKey(date), size, black, white)
	sum := h.Sum(nil)
	// first 8 bytes; clear the sign bit so the seed is never negative
	n := binary.BigEndian.Uint64(sum[:8]) &^ (1 << 63)
	if n == 0 {
		n = 1
	}
	return int64(n)
}
