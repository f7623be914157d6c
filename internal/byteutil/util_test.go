package byteutil

import (
	"bytes"
	"testing"
)

func TestEncodeInt64ToBytesOrder(t *testing.T) {
	a := EncodeInt64ToBytes(255)
	b := EncodeInt64ToBytes(256)
	if len(a) != 8 {
		t.Fatalf("len = %d, want 8", len(a))
	}
	if bytes.Compare(a, b) >= 0 {
		t.Fatalf("%x must sort before %x", a, b)
	}
}
