package handler

import (
	"strings"
	"testing"
)

func TestRenderNote(t *testing.T) {
	if got := renderNote("   "); got != "" {
		t.Fatalf("expected empty output for blank note, got %q", got)
	}

	got := string(renderNote("Take **after** meals\n<script>alert(1)</script>"))
	if !strings.Contains(got, "<strong>after</strong>") {
		t.Fatalf("expected markdown to render, got %q", got)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected script to be stripped, got %q", got)
	}

	got = string(renderNote("see https://example.com"))
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Fatalf("expected bare link to be linkified, got %q", got)
	}
}
