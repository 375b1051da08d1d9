package filetype

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// Detector handles file type detection using magic bytes
type Detector struct{}

// New creates a new file type detector
func New() *Detector {
	return &Detector{}
}

// DetectMIME returns the MIME type of the file at filePath based on its
// magic bytes, not its filename.
func (d *Detector) DetectMIME(filePath string) (string, error) {
	mtype, err := mimetype.DetectFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}

	log.Debug().Str("mime", mtype.String()).Str("ext", mtype.Extension()).Str("file", filePath).Msg("detected file type")
	return mtype.String(), nil
}

// IsPDF reports whether the file at filePath is a PDF. The detected MIME
// type is returned either way so callers can name the actual type in errors.
func (d *Detector) IsPDF(filePath string) (bool, string, error) {
	mime, err := d.DetectMIME(filePath)
	if err != nil {
		return false, "", err
	}
	return mime == "application/pdf", mime, nil
}
