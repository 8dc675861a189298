package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SecretIndex returns a deterministic index for a date using
// HMAC(salt, YYYY-MM-DD) % listLen, so every player gets the same secret
// on the same day without the server storing a schedule.
func SecretIndex(date time.Time, salt string, listLen int) int {
	if listLen <= 0 {
		return 0
	}
	dk := DateKey(date)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(listLen))
}
