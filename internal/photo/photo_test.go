package photo

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestNormalizeShrinksIntoBox(t *testing.T) {
	n := NewNormalizer(0, 0, 0)
	out, err := n.Normalize(pngBytes(t, 400, 400))
	require.NoError(t, err)
	w, h := decodedSize(t, out)
	assert.Equal(t, 200, w)
	assert.Equal(t, 200, h)

	out, err = n.Normalize(pngBytes(t, 100, 600))
	require.NoError(t, err)
	w, h = decodedSize(t, out)
	assert.Equal(t, 50, w)
	assert.Equal(t, 300, h)
}

func TestNormalizeKeepsSmallImages(t *testing.T) {
	out, err := NewNormalizer(200, 300, 90).Normalize(pngBytes(t, 40, 60))
	require.NoError(t, err)
	w, h := decodedSize(t, out)
	assert.Equal(t, 40, w)
	assert.Equal(t, 60, h)
}

func TestNormalizeRejectsNonImages(t *testing.T) {
	_, err := NewNormalizer(0, 0, 0).Normalize([]byte("not an image at all"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestNameFromFilename(t *testing.T) {
	assert.Equal(t, "홍길동", NameFromFilename("홍길동.jpg"))
	assert.Equal(t, "홍길동", NameFromFilename("홍길동_기획팀.JPEG"))
	assert.Equal(t, "홍길동", NameFromFilename("/tmp/upload/홍길동 사진.png"))
	assert.Equal(t, "홍길동", NameFromFilename(norm.NFD.String("홍길동.webp")))
}

func TestHandle(t *testing.T) {
	assert.Equal(t, "photo://emp_1", Handle("emp_1"))
}
