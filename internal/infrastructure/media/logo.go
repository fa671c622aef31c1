package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"orcafacil/internal/usecase/interfaces"

	"github.com/disintegration/imaging"
)

var (
	ErrUnsupportedLogo = errors.New("logo must be a PNG, JPG or SVG image")
	ErrMalformedLogo   = errors.New("malformed logo data URL")
)

const DefaultLogoMaxWidth = 400

// LogoProcessor shrinks raster logos so the profile blob stays small.
//
// Plain URLs and SVG data URLs are kept as-is. PNG and JPEG data URLs wider than
// maxWidth are downscaled and re-encoded as PNG.
type LogoProcessor struct {
	maxWidth int
}

var _ interfaces.ILogoProcessor = (*LogoProcessor)(nil)

func NewLogoProcessor(maxWidth int) *LogoProcessor {
	if maxWidth <= 0 {
		maxWidth = DefaultLogoMaxWidth
	}
	return &LogoProcessor{maxWidth: maxWidth}
}

func (p *LogoProcessor) Normalize(logo string) (string, error) {
	logo = strings.TrimSpace(logo)
	if logo == "" || !strings.HasPrefix(logo, "data:") {
		return logo, nil
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(logo, "data:"), ",")
	if !ok {
		return "", ErrMalformedLogo
	}
	params := strings.Split(header, ";")
	mime := strings.ToLower(strings.TrimSpace(params[0]))

	switch mime {
	case "image/svg+xml":
		return logo, nil
	case "image/png", "image/jpeg", "image/jpg":
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLogo, mime)
	}
	if params[len(params)-1] != "base64" {
		return "", ErrMalformedLogo
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedLogo, err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedLogo, err)
	}
	if img.Bounds().Dx() <= p.maxWidth {
		return logo, nil
	}

	resized := imaging.Resize(img, p.maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
