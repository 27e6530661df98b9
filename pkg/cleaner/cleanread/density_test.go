package cleanread

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestNormalizeClasses(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"b a", "a b"},
		{"a  a\tb", "a b"},
		{"post", "post"},
	}

	for _, tt := range tests {
		if got := normalizeClasses(tt.in); got != tt.want {
			t.Errorf("normalizeClasses(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSignature_String(t *testing.T) {
	tests := []struct {
		sig  signature
		want string
	}{
		{signature{tag: "div"}, "div"},
		{signature{tag: "div", id: "main"}, "div#main"},
		{signature{tag: "section", classes: "a b"}, "section.a.b"},
		{signature{tag: "div", id: "x", classes: "wide"}, "div#x.wide"},
	}

	for _, tt := range tests {
		if got := tt.sig.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestDensest(t *testing.T) {
	t.Run("class order does not split a signature", func(t *testing.T) {
		doc := parse(t, `<body>
			<div class="col left"><p>aaaa</p></div>
			<div class="left col"><p>bbbb</p></div>
			<div class="big"><p>cccccc</p></div>
		</body>`)

		node, sig := densest(doc, NewStats())
		if node == nil {
			t.Fatal("expected a node")
		}
		// 4+4 pooled under div.col.left beats 6 under div.big.
		if sig.String() != "div.col.left" {
			t.Errorf("signature = %q, want div.col.left", sig.String())
		}
		if !strings.Contains(goquery.NewDocumentFromNode(node).Text(), "aaaa") {
			t.Error("expected first element seen for the signature")
		}
	})

	t.Run("ties go to first encountered", func(t *testing.T) {
		doc := parse(t, `<body><div id="a"><p>same</p></div><div id="b"><p>same</p></div></body>`)

		_, sig := densest(doc, NewStats())
		if sig.String() != "div#a" {
			t.Errorf("signature = %q, want div#a", sig.String())
		}
	})

	t.Run("ancestors accumulate nested paragraphs", func(t *testing.T) {
		doc := parse(t, `<body><div id="outer"><div id="one"><p>12345</p></div><div id="two"><p>123456</p></div></div></body>`)

		_, sig := densest(doc, NewStats())
		if sig.String() != "div#outer" {
			t.Errorf("signature = %q, want div#outer", sig.String())
		}
	})

	t.Run("lengths count runes", func(t *testing.T) {
		doc := parse(t, `<body><div id="wide"><p>日本語テキスト</p></div><div id="ascii"><p>abcdefgh</p></div></body>`)

		// 7 runes (21 bytes) loses to 8 runes.
		_, sig := densest(doc, NewStats())
		if sig.String() != "div#ascii" {
			t.Errorf("signature = %q, want div#ascii", sig.String())
		}
	})

	t.Run("empty paragraphs score nothing", func(t *testing.T) {
		stats := NewStats()
		doc := parse(t, `<body><div><p></p></div></body>`)

		node, _ := densest(doc, stats)
		if node != nil {
			t.Error("expected nil node for zero-length text")
		}
		if stats.ParagraphsScored != 1 {
			t.Errorf("ParagraphsScored = %d, want 1", stats.ParagraphsScored)
		}
	})
}
