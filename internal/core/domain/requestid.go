package domain

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

// RequestIDPrefix namespaces verification tokens so they are recognisable in
// logs and third-party integrations.
const RequestIDPrefix = "req_"

const requestIDRandomLen = 13

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateRequestID returns a new opaque verification token:
// "req_" + base-36 milliseconds since epoch + "_" + 13 base-36 random
// characters. Collision probability is negligible; the sparse unique index on
// request_id is the enforcement point, and a colliding write surfaces as a
// DuplicateKeyError the caller handles by regenerating.
func GenerateRequestID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	buf := make([]byte, requestIDRandomLen)
	if _, err := rand.Read(buf); err != nil {
		// fallback: derive from nanoseconds, still two non-empty segments
		return RequestIDPrefix + ts + "_" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}

	return RequestIDPrefix + ts + "_" + string(buf)
}

// IsRequestID reports whether s has the token shape: the namespace prefix
// followed by two non-empty base-36 segments.
func IsRequestID(s string) bool {
	rest, ok := strings.CutPrefix(s, RequestIDPrefix)
	if !ok {
		return false
	}
	ts, random, ok := strings.Cut(rest, "_")
	return ok && ts != "" && random != ""
}
