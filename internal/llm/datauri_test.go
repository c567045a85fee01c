package llm

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImageDataURLSniffsPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	u := EncodeImageDataURL(buf.Bytes())
	require.True(t, strings.HasPrefix(u, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(u, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), decoded)
}

func TestEncodeImageDataURLFallsBackToJPEG(t *testing.T) {
	u := EncodeImageDataURL([]byte{0x00, 0x01, 0x02, 0x03})
	assert.True(t, strings.HasPrefix(u, "data:image/jpeg;base64,"))
}
