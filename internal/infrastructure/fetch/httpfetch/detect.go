package httpfetch

import (
	"bytes"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/docqa-labs/docqa/internal/core/domain"
)

var magicPDF = []byte("%PDF-")
var magicZIP = []byte("PK\x03\x04")

// DetectFormat resolves the document format from the URL extension, the
// Content-Type header and leading magic bytes, in that order. The extension
// wins because object-store links routinely serve everything as
// application/octet-stream.
func DetectFormat(rawURL, contentType string, raw []byte) (domain.Format, error) {
	if format, ok := formatFromExtension(rawURL); ok {
		return format, nil
	}
	if format, ok := formatFromContentType(contentType); ok {
		return format, nil
	}
	if format, ok := formatFromMagic(raw); ok {
		return format, nil
	}
	return "", domain.WrapError(domain.ErrUnsupportedFormat, "detect format",
		fmt.Errorf("url=%s content_type=%s", rawURL, contentType))
}

func formatFromExtension(rawURL string) (domain.Format, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(path.Ext(parsed.Path)) {
	case ".pdf":
		return domain.FormatPDF, true
	case ".docx":
		return domain.FormatDOCX, true
	case ".txt":
		return domain.FormatTXT, true
	}
	return "", false
}

func formatFromContentType(contentType string) (domain.Format, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch mediaType {
	case "application/pdf":
		return domain.FormatPDF, true
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return domain.FormatDOCX, true
	case "text/plain":
		return domain.FormatTXT, true
	}
	return "", false
}

func formatFromMagic(raw []byte) (domain.Format, bool) {
	switch {
	case bytes.HasPrefix(raw, magicPDF):
		return domain.FormatPDF, true
	case bytes.HasPrefix(raw, magicZIP):
		return domain.FormatDOCX, true
	case utf8.Valid(raw):
		return domain.FormatTXT, true
	}
	return "", false
}
