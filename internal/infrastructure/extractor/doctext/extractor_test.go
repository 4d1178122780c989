package doctext

import (
	"context"
	"strings"
	"testing"
)

func TestExtractPlainTextTrimsWhitespace(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract(context.Background(), strings.NewReader("  lease agreement \n"), "text/plain; charset=utf-8")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "lease agreement" {
		t.Fatalf("text = %q", text)
	}
}

func TestExtractRejectsBinaryNonPDF(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), strings.NewReader("\xff\xfe\x00\x01"), "application/octet-stream")
	if err == nil {
		t.Fatalf("expected error for binary payload")
	}
}

func TestExtractRejectsMalformedPDF(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), strings.NewReader("not a pdf"), "application/pdf")
	if err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
}

func TestExtractHonorsCanceledContext(t *testing.T) {
	e := NewExtractor()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Extract(ctx, strings.NewReader("text"), "text/plain"); err == nil {
		t.Fatalf("expected context error")
	}
}
