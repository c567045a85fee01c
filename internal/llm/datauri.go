package llm

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// EncodeImageDataURL renders image bytes as a data URL for vision chat
// messages. The MIME type is sniffed from the bytes themselves because the
// preprocessing step may have re-encoded the upload.
func EncodeImageDataURL(img []byte) string {
	mt := http.DetectContentType(img)
	if !strings.HasPrefix(mt, "image/") {
		mt = "image/jpeg"
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(img)
}
