package domain

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// Document is a fetched source document. It is immutable once fetched and is
// discarded after chunking; only derived chunks live for the rest of the
// request.
type Document struct {
	SourceURL   string
	ContentHash string
	Format      Format
	Raw         []byte
}

// Chunk is a contiguous slice of a document's normalized text, the unit of
// embedding and retrieval. Offsets are byte positions into the normalized
// text; with a positive overlap, chunk i ends past where chunk i+1 starts.
type Chunk struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}
