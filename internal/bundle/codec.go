package bundle

import (
	"encoding/base64"
	"strings"
)

// encodeChunkBytes is the raw-byte chunk size used when encoding images.
// It is a multiple of 3 so each chunk encodes to whole base64 quanta and
// the chunks concatenate into one valid base64 string.
const encodeChunkBytes = 48 * 1024

// EncodeImage encodes raw image bytes to base64 text for inclusion in a
// JSON bundle. Encoding is chunked so arbitrarily large attachments never
// require one contiguous intermediate buffer per call. Returns nil for
// empty input so absent images serialize as JSON null.
func EncodeImage(data []byte) *string {
	if len(data) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.Grow(base64.StdEncoding.EncodedLen(len(data)))
	for off := 0; off < len(data); off += encodeChunkBytes {
		end := off + encodeChunkBytes
		if end > len(data) {
			end = len(data)
		}
		sb.WriteString(base64.StdEncoding.EncodeToString(data[off:end]))
	}
	s := sb.String()
	return &s
}

// DecodeImage decodes a base64 image string from a bundle, exactly
// round-tripping the bytes produced by EncodeImage. A nil or empty string
// yields nil bytes.
func DecodeImage(s *string) ([]byte, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(*s)
}
