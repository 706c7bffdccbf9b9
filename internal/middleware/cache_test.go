package middleware

import (
	"bytes"
	"net/http"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`[{"id":1}]`)

	payload, err := EncodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("EncodePayload returned error: %v", err)
	}

	status, gotHdr, gotBody, ok := DecodePayload(payload)
	if !ok {
		t.Fatal("DecodePayload rejected a valid payload")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want %d", status, http.StatusOK)
	}
	if got := gotHdr.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	if !bytes.Equal(gotBody, body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 7)} {
		if _, _, _, ok := DecodePayload(bs); ok {
			t.Errorf("DecodePayload(%v) accepted a truncated payload", bs)
		}
	}
	// Header length pointing past the buffer.
	bad := make([]byte, 8)
	bad[7] = 200
	if _, _, _, ok := DecodePayload(bad); ok {
		t.Error("DecodePayload accepted an out-of-range header length")
	}
}
