package checksum

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// DocumentChecksum hashes a raw submitted document so re-submissions of the
// same bytes can be recognized cheaply.
func DocumentChecksum(body []byte) string {
	digest := xxhash.New()
	digest.Write(body)

	return hex.EncodeToString(digest.Sum(nil))
}
