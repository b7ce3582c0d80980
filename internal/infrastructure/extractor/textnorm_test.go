package extractor

import "testing"

func TestNormalizeWhitespaceCollapsesRuns(t *testing.T) {
	got := NormalizeWhitespace("one   two\tthree\nfour")
	want := "one two three four"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeWhitespaceKeepsParagraphBoundaries(t *testing.T) {
	got := NormalizeWhitespace("first paragraph.\n\n  second\nparagraph. \n\n\nthird.")
	want := "first paragraph.\nsecond paragraph.\nthird."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeWhitespaceTrimsEdges(t *testing.T) {
	got := NormalizeWhitespace("\n\n  hello  \n\n")
	if got != "hello" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}

func TestNormalizeWhitespaceEmpty(t *testing.T) {
	if got := NormalizeWhitespace("  \n \t "); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
