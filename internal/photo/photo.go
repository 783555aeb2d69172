// Package photo normalises uploaded staff photos and maps bulk-upload
// filenames to employee names.
package photo

import (
	"bytes"
	"image"
	stddraw "image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
	"golang.org/x/text/unicode/norm"

	apperrors "github.com/spec-kit/seatboard/pkg/util/errorutil"
)

// ContentType is the MIME type of every normalised photo.
const ContentType = "image/jpeg"

// Normalizer shrinks photos into a bounding box and re-encodes them as JPEG.
type Normalizer struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// NewNormalizer applies the defaults of a 200x300 box at quality 85 for zero values.
func NewNormalizer(maxWidth, maxHeight, quality int) Normalizer {
	if maxWidth <= 0 {
		maxWidth = 200
	}
	if maxHeight <= 0 {
		maxHeight = 300
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return Normalizer{MaxWidth: maxWidth, MaxHeight: maxHeight, Quality: quality}
}

// Normalize decodes png, jpeg, gif or webp input, scales it down to fit the
// box keeping its aspect ratio, and returns JPEG bytes. Smaller images keep their size.
func (n Normalizer) Normalize(raw []byte) ([]byte, error) {
	switch http.DetectContentType(raw) {
	case "image/png", "image/jpeg", "image/gif", "image/webp":
	default:
		return nil, apperrors.NewValidationError("photo must be png, jpeg, gif or webp", nil)
	}

	img, err := decodeWithWebPFallback(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("unable to decode photo", map[string]any{"reason": err.Error()})
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, apperrors.NewValidationError("invalid image dimensions", nil)
	}
	targetW, targetH := fit(width, height, n.MaxWidth, n.MaxHeight)

	canvas := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	stddraw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, stddraw.Src)
	xdraw.CatmullRom.Scale(canvas, canvas.Bounds(), img, bounds, xdraw.Over, nil)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, canvas, &jpeg.Options{Quality: n.Quality}); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return out.Bytes(), nil
}

func decodeWithWebPFallback(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return img, nil
	}
	if decoded, webpErr := webp.Decode(bytes.NewReader(raw)); webpErr == nil {
		return decoded, nil
	}
	return nil, err
}

func fit(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	ratio := math.Min(float64(maxWidth)/float64(width), float64(maxHeight)/float64(height))
	w := int(math.Round(float64(width) * ratio))
	h := int(math.Round(float64(height) * ratio))
	return max(w, 1), max(h, 1)
}

var (
	imageExt     = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)
	nameSplitter = regexp.MustCompile(`[_\s]`)
)

// NameFromFilename extracts the employee name from "홍길동.jpg" or
// "홍길동_기획팀.jpg". Decomposed Hangul, as produced by some file systems, is composed first.
func NameFromFilename(filename string) string {
	base := norm.NFC.String(filepath.Base(filename))
	base = imageExt.ReplaceAllString(base, "")
	part := nameSplitter.Split(strings.TrimSpace(base), 2)[0]
	return strings.TrimSpace(part)
}

// Handle is the opaque reference stored on an employee.
func Handle(employeeID string) string {
	return "photo://" + employeeID
}
