package security

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FileValidationResult contains the result of file validation
type FileValidationResult struct {
	Valid        bool   // passed all validation checks
	Extension    string // lowercase extension including the dot
	DetectedMIME string // MIME detected from content, without parameters
	Error        string // reason when Valid is false
}

// Magic byte signatures for allowed resume formats.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                         // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}}, // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                         // ZIP (PK..)
	".odt":  {{0x50, 0x4B, 0x03, 0x04}},
	".rtf":  {{0x7B, 0x5C, 0x72, 0x74, 0x66}}, // {\rtf
	".txt":  {},
}

// Strict MIME whitelist per extension. application/octet-stream is never accepted.
var allowedMIMETypes = map[string][]string{
	".pdf":  {"application/pdf"},
	".doc":  {"application/msword", "application/x-ole-storage"},
	".docx": {"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/zip"},
	".odt":  {"application/vnd.oasis.opendocument.text", "application/zip"},
	".rtf":  {"text/rtf", "application/rtf"},
	".txt":  {"text/plain"},
}

// ValidateResumeFile performs 3-layer validation of an uploaded resume:
// extension whitelist, magic bytes, then content-detected MIME whitelist.
func ValidateResumeFile(filename string, data []byte) FileValidationResult {
	result := FileValidationResult{}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}
	result.Extension = ext

	if _, ok := allowedMIMETypes[ext]; !ok {
		result.Error = "file extension not allowed: " + ext
		return result
	}

	if !validateMagicBytes(ext, data) {
		result.Error = "file content does not match extension"
		return result
	}

	detected := mimetype.Detect(data)
	result.DetectedMIME = strings.SplitN(detected.String(), ";", 2)[0]

	for _, allowed := range allowedMIMETypes[ext] {
		if detected.Is(allowed) {
			result.Valid = true
			return result
		}
	}

	result.Error = "MIME type not allowed: " + result.DetectedMIME
	return result
}

func validateMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}

	signatures, ok := magicBytes[ext]
	if !ok {
		return false
	}
	if len(signatures) == 0 {
		return true
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}

// ValidateFileExtension checks only the extension (for quick pre-validation)
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file has no extension")
	}
	if _, ok := allowedMIMETypes[ext]; !ok {
		return errors.New("file extension not allowed: " + ext)
	}
	return nil
}
