package markdown

import (
	"strings"
	"testing"
)

func TestRender_Formatting(t *testing.T) {
	out := Render("**bold** and *italic*\n\n- item")
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("missing strong tag: %s", out)
	}
	if !strings.Contains(out, "<em>italic</em>") {
		t.Fatalf("missing em tag: %s", out)
	}
	if !strings.Contains(out, "<li>item</li>") {
		t.Fatalf("missing list item: %s", out)
	}
}

func TestRender_StripsScript(t *testing.T) {
	out := Render("hello\n\n<script>alert(1)</script>\n\n*ok*")
	if strings.Contains(out, "<script") || strings.Contains(out, "alert(1)") {
		t.Fatalf("script survived sanitization: %s", out)
	}
	if !strings.Contains(out, "<em>ok</em>") {
		t.Fatalf("legit markup lost: %s", out)
	}
}

func TestRender_StripsEventHandlersAndJSLinks(t *testing.T) {
	out := Render(`<a href="javascript:alert(1)" onclick="x()">click</a>`)
	if strings.Contains(out, "javascript:") || strings.Contains(out, "onclick") {
		t.Fatalf("dangerous attributes survived: %s", out)
	}
	if !strings.Contains(out, "click") {
		t.Fatalf("link text lost: %s", out)
	}
}
