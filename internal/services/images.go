package services

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DecodeDataURI decodes a "data:<mime>;base64,<payload>" string and returns
// the raw bytes plus the file extension derived from the MIME subtype
// ("data:image/png;base64,..." -> "png").
func DecodeDataURI(s string) ([]byte, string, error) {
	meta, payload, found := strings.Cut(s, ";base64,")
	if !found {
		return nil, "", fmt.Errorf("missing ;base64, separator")
	}

	ext := meta
	if i := strings.LastIndex(meta, "/"); i >= 0 {
		ext = meta[i+1:]
	}
	if ext == "" {
		return nil, "", fmt.Errorf("missing mime subtype")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 payload: %w", err)
	}
	return data, ext, nil
}

// DecodeEditedImage decodes the auxiliary edited-frame payload sent by the
// client-side editor. The extension is ignored: edited frames are always
// stored as PNG to preserve transparency.
func DecodeEditedImage(s string) ([]byte, error) {
	_, payload, found := strings.Cut(s, ";base64,")
	if !found {
		return nil, fmt.Errorf("missing ;base64, separator")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}
	return data, nil
}

// EditedFrameFilename names a decoded edited frame under a fresh random name.
func EditedFrameFilename() string {
	return fmt.Sprintf("edited_%s.png", uuid.New())
}

// ResultFilename names a saved composited result for a campaign.
func ResultFilename(slug string, resultID uuid.UUID, ext string) string {
	return fmt.Sprintf("%s-%s.%s", slug, resultID, ext)
}

// UploadFilename prefixes an uploaded file's original name with a random
// component so repeated uploads of the same file never collide.
func UploadFilename(original string) string {
	name := strings.ReplaceAll(uuid.New().String(), "-", "")[:8] + "_" + original
	return strings.ReplaceAll(name, "/", "_")
}
