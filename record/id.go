/*
id.go - Calculation id generation

PURPOSE:
  Generates the opaque tokens records are keyed by. Ids are exposed in
  URLs, so they must be collision-resistant and non-enumerable: a
  cryptographically random suffix, never a sequential counter.

FORMAT:
  "OL-" + 12 uppercase hex characters (6 random bytes), e.g. OL-3F9A01C2B7D4.
*/
package record

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// idPrefix brands every calculation id.
const idPrefix = "OL-"

const idRandomBytes = 6

// NewID returns a fresh, URL-safe calculation id.
func NewID() string {
	buf := make([]byte, idRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; if it ever does,
		// refusing to continue is safer than issuing guessable ids.
		panic("record: crypto/rand unavailable: " + err.Error())
	}
	return idPrefix + strings.ToUpper(hex.EncodeToString(buf))
}
