package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/docqa-labs/docqa/internal/core/domain"
)

const documentXMLFixture = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r><w:r><w:t xml:space="preserve"> continues.</w:t></w:r></w:p>
    <w:p><w:r><w:drawing/></w:r></w:p>
    <w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDOCX(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractReadsParagraphsInOrder(t *testing.T) {
	raw := buildDOCX(t, map[string]string{
		"word/document.xml": documentXMLFixture,
		"[Content_Types].xml": `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
	})

	got, err := New().Extract(context.Background(), raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := "First paragraph continues.\nSecond paragraph."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExtractFailsWithoutDocumentPart(t *testing.T) {
	raw := buildDOCX(t, map[string]string{
		"word/styles.xml": `<w:styles/>`,
	})
	_, err := New().Extract(context.Background(), raw)
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}

func TestExtractFailsOnCorruptArchive(t *testing.T) {
	_, err := New().Extract(context.Background(), []byte("PK\x03\x04 not a zip"))
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}
