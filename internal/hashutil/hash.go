package hashutil

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/junglebet-games/viptransfer/internal/strpool"
	"github.com/valyala/fastrand"
)

const referencePrefix = "JB-"

// Reference returns a short support reference for a submitted application,
// e.g. JB-3F9A0C1D. It is derived from the user, the time and a random salt.
func Reference(userID int64, at time.Time) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	buf.WriteString(strconv.FormatInt(userID, 10))
	buf.WriteByte(':')
	buf.WriteString(strconv.FormatInt(at.UnixNano(), 10))
	buf.WriteByte(':')
	buf.WriteString(strconv.FormatUint(uint64(fastrand.Uint32()), 10))

	sum := sha1.Sum([]byte(buf.String()))
	return referencePrefix + strings.ToUpper(hex.EncodeToString(sum[:4]))
}

func ValidReference(s string) bool {
	if !strings.HasPrefix(s, referencePrefix) {
		return false
	}

	code := strings.TrimPrefix(s, referencePrefix)
	if len(code) != 8 {
		return false
	}

	_, err := hex.DecodeString(code)
	return err == nil && strings.ToUpper(code) == code
}
