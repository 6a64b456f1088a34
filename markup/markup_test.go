package markup

import (
	"strings"
	"testing"

	"flexterm/color"
)

func joinText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestParsePlainTextIsSingleSpan(t *testing.T) {
	spans := Parse("just some words")
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	if spans[0].Text != "just some words" {
		t.Errorf("expected unmodified text, got %q", spans[0].Text)
	}
	if spans[0].Attrs != 0 {
		t.Errorf("expected no attrs on plain text, got %v", spans[0].Attrs)
	}
}

func TestParseBoldMarker(t *testing.T) {
	spans := Parse("plain **bold** plain")
	if joinText(spans) != "plain bold plain" {
		t.Fatalf("expected markers stripped, got %q", joinText(spans))
	}
	var foundBold bool
	for _, s := range spans {
		if s.Text == "bold" {
			foundBold = true
			if s.Attrs&color.Bold == 0 {
				t.Errorf("expected bold span to carry color.Bold, got %v", s.Attrs)
			}
		}
	}
	if !foundBold {
		t.Fatalf("expected a span with text 'bold', got %+v", spans)
	}
}

func TestParseSingleStyleMarkersToggleAttrs(t *testing.T) {
	spans := Parse("-dim- _under_ ~strike~")
	want := map[string]color.Attrs{
		"dim":    color.Dim,
		"under":  color.Underline,
		"strike": color.Strikethrough,
	}
	got := map[string]color.Attrs{}
	for _, s := range spans {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}
		got[trimmed] = s.Attrs
	}
	for text, attr := range want {
		if got[text]&attr == 0 {
			t.Errorf("expected %q span to carry attr %v, got %v", text, attr, got[text])
		}
	}
}

func TestParseColorToken(t *testing.T) {
	spans := Parse("#red(alert)")
	var found bool
	for _, s := range spans {
		if s.Text == "alert" {
			found = true
			if s.Fg.IsUnset() {
				t.Errorf("expected resolved red foreground, got unset")
			}
		}
	}
	if !found {
		t.Fatalf("expected a span with text 'alert', got %+v", spans)
	}
}

func TestParseHeaderWrapsReverse(t *testing.T) {
	spans := Parse("# Title\n")
	var found bool
	for _, s := range spans {
		if strings.Contains(s.Text, "Title") {
			found = true
			if s.Attrs&color.Inverse == 0 {
				t.Errorf("expected header span to carry color.Inverse, got %v", s.Attrs)
			}
			if s.Attrs&color.Bold == 0 {
				t.Errorf("expected single-# header to also be bold, got %v", s.Attrs)
			}
		}
	}
	if !found {
		t.Fatalf("expected a span containing 'Title', got %+v", spans)
	}
}

func TestParseListReplacesBulletMarker(t *testing.T) {
	spans := Parse("  * item one")
	if !strings.Contains(joinText(spans), "•") {
		t.Errorf("expected bullet substitution, got %q", joinText(spans))
	}
}

func TestParsePreservesFencedCodeLiterally(t *testing.T) {
	spans := Parse("before `` let(x) `` after")
	if !strings.Contains(joinText(spans), "let(x)") {
		t.Fatalf("expected fenced code content preserved, got %q", joinText(spans))
	}
}

func TestHighlightNeverPanicsOnEmptyInput(t *testing.T) {
	spans := Highlight("", "")
	if len(spans) != 1 {
		t.Fatalf("expected fallback single span, got %d", len(spans))
	}
}
