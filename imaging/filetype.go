package imaging

import (
	"path/filepath"
	"strings"

	"imagestego/stego"
)

// File roles reported in validation errors.
const (
	RoleCarrier = "carrier"
	RoleSecret  = "secret"
	RoleOutput  = "output"
	RoleImage   = "image"
)

// allFormats lists every container the codec can read. Formats that
// recompress pixel data (jpg, webp) are acceptable as plain inputs but
// would destroy an embedded bit plane, so any file holding one is held
// to losslessFormats instead.
var (
	allFormats      = []string{"png", "bmp", "tiff", "ppm", "pgm", "pbm", "jpg", "jpeg", "webp"}
	losslessFormats = []string{"png", "bmp", "tiff", "ppm", "pgm", "pbm"}
)

// ValidateFileType checks path against the full format allow-list.
func ValidateFileType(path, role string) error {
	return validateExt(path, role, allFormats)
}

// ValidateLosslessFileType checks path against the lossless-only
// allow-list, for files that carry embedded bit-plane data.
func ValidateLosslessFileType(path, role string) error {
	return validateExt(path, role, losslessFormats)
}

func validateExt(path, role string, allowed []string) error {
	ext := normalizedExt(path)
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return &stego.UnsupportedFileTypeError{Path: path, Role: role, Extension: ext}
}

func normalizedExt(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
