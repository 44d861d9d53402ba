package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/webp"
)

const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEWEBP = "image/webp"

	JPEGQuality = 85
)

// ErrInvalidImage is wrapped by every rejection so callers can map it to a client error
var ErrInvalidImage = errors.New("invalid image")

// Limits bounds what Sanitize accepts
type Limits struct {
	MaxBytes  int64
	MaxWidth  int
	MaxHeight int
	MaxPixels int64
}

// DefaultLimits is 10 MiB, 8000x8000 and 40 megapixels
var DefaultLimits = Limits{
	MaxBytes:  10 << 20,
	MaxWidth:  8000,
	MaxHeight: 8000,
	MaxPixels: 40_000_000,
}

var formatByMIME = map[string]string{
	MIMEJPEG: "jpeg",
	MIMEPNG:  "png",
	MIMEWEBP: "webp",
}

// Result is a re-encoded image stripped of all metadata
type Result struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// IsAllowedMIME reports whether uploads of the given content type are accepted
func IsAllowedMIME(mime string) bool {
	_, ok := formatByMIME[mime]
	return ok
}

// Sanitize validates data against the declared MIME type and limits, applies EXIF
// orientation and re-encodes the pixels. PNG stays PNG, everything else becomes JPEG.
func Sanitize(data []byte, declaredMIME string, limits Limits) (*Result, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidImage)
	}
	if limits.MaxBytes > 0 && int64(len(data)) > limits.MaxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidImage, limits.MaxBytes)
	}

	wantFormat, ok := formatByMIME[declaredMIME]
	if !ok {
		return nil, fmt.Errorf("%w: content type %q is not allowed", ErrInvalidImage, declaredMIME)
	}

	detected := mimetype.Detect(data)
	if !detected.Is(declaredMIME) {
		return nil, fmt.Errorf("%w: file signature %s does not match %s", ErrInvalidImage, detected.String(), declaredMIME)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read image header: %v", ErrInvalidImage, err)
	}
	if format != wantFormat {
		return nil, fmt.Errorf("%w: decoded format %s does not match %s", ErrInvalidImage, format, declaredMIME)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidImage)
	}
	if (limits.MaxWidth > 0 && cfg.Width > limits.MaxWidth) || (limits.MaxHeight > 0 && cfg.Height > limits.MaxHeight) {
		return nil, fmt.Errorf("%w: dimensions %dx%d exceed %dx%d", ErrInvalidImage, cfg.Width, cfg.Height, limits.MaxWidth, limits.MaxHeight)
	}
	if limits.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > limits.MaxPixels {
		return nil, fmt.Errorf("%w: %d pixels exceed %d", ErrInvalidImage, int64(cfg.Width)*int64(cfg.Height), limits.MaxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image: %v", ErrInvalidImage, err)
	}

	res := &Result{
		ContentType: MIMEJPEG,
		Ext:         "jpg",
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}

	var buf bytes.Buffer
	if declaredMIME == MIMEPNG {
		res.ContentType = MIMEPNG
		res.Ext = "png"
		err = imaging.Encode(&buf, img, imaging.PNG)
	} else {
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	res.Data = buf.Bytes()
	return res, nil
}
