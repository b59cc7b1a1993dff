package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
)

var ErrEmptyDocument = errors.New("document contains no extractable text")

// ExtractText returns the plain text of an uploaded resume. Plain-text
// files are decoded directly; everything else goes through docconv, which
// shells out to the usual converters (pdftotext, antiword, unrtf).
func ExtractText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var text string
	if ext == ".txt" {
		if !utf8.Valid(data) {
			return "", errors.New("text file is not valid UTF-8")
		}
		text = string(data)
	} else {
		res, err := docconv.Convert(bytes.NewReader(data), docconv.MimeTypeByExtension(filename), true)
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", ext, err)
		}
		text = res.Body
	}

	text = Normalize(text)
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

// Normalize trims each line, drops runs of blank lines and trims the result.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
