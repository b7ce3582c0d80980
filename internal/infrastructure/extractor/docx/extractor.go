package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/docqa-labs/docqa/internal/core/domain"
	"github.com/docqa-labs/docqa/internal/infrastructure/extractor"
)

// Extractor reads the main document part of a DOCX archive and walks its
// paragraph/run structure in document order. Embedded objects and images are
// not text runs and fall out of the walk naturally.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "open docx archive", err)
	}

	content, err := documentPart(reader)
	if err != nil {
		return "", err
	}

	text, err := paragraphText(content)
	if err != nil {
		return "", err
	}

	normalized := extractor.NormalizeWhitespace(text)
	if normalized == "" {
		return "", domain.WrapError(domain.ErrExtraction, "extract docx text", errors.New("no extractable text"))
	}
	return normalized, nil
}

func documentPart(reader *zip.Reader) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, domain.WrapError(domain.ErrExtraction, "open document part", err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, domain.WrapError(domain.ErrExtraction, "read document part", err)
		}
		return content, nil
	}
	return nil, domain.WrapError(domain.ErrExtraction, "locate document part",
		errors.New("word/document.xml not found"))
}

type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

func paragraphText(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", domain.WrapError(domain.ErrExtraction, "parse document xml", err)
	}

	var b strings.Builder
	for _, para := range doc.Body.Paragraphs {
		var line strings.Builder
		for _, r := range para.Runs {
			for _, t := range r.Text {
				line.WriteString(t.Content)
			}
		}
		if strings.TrimSpace(line.String()) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(line.String())
	}
	return b.String(), nil
}
