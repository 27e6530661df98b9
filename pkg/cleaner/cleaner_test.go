package cleaner

import (
	"errors"
	"strings"
	"testing"
)

const testArticle = `<!DOCTYPE html>
<html><head><title>Tide pools</title><script>track()</script></head>
<body>
<nav><a href="/">Home</a> <a href="/news">News</a></nav>
<article>
<h1>Life in the tide pools</h1>
<p>Tide pools are rocky hollows that hold seawater when the tide goes out. They are home to a surprising range of creatures that have adapted to constant change.</p>
<p>Anemones, crabs and sea stars all make a living here, enduring heat, waves and hungry birds. Visiting at low tide is the best way to see them.</p>
<p>Barnacles close their shells tightly when the water drains away, sealing in moisture until the sea returns. Mussels do the same, clustering in dense beds that shelter smaller animals from the sun.</p>
<p>Hermit crabs trade shells as they grow, and a single pool can host a busy market of empty homes. Researchers have watched crabs line up by size to swap shells in a chain.</p>
<p>Seaweeds provide food and shade, and their colours shift from green near the surface to red in deeper water where less light reaches.</p>
<p>Always step carefully and leave every rock the way you found it so the pool stays healthy for the next visitor.</p>
</article>
<footer>Copyright Example News</footer>
</body></html>`

func TestNew(t *testing.T) {
	tests := []struct {
		engine  string
		want    string
		wantErr bool
	}{
		{"", "cleanread", false},
		{"cleanread", "cleanread", false},
		{"Readability", "readability", false},
		{" trafilatura ", "trafilatura", false},
		{"regex", "regex", false},
		{"boilerpipe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			c, err := New(tt.engine)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown engine")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if c.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", c.Name(), tt.want)
			}
		})
	}
}

func TestTagStripper_Clean(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		contains []string
		excludes []string
	}{
		{
			name:     "removes default blocks",
			html:     `<p>keep</p><script type="text/javascript">var x = "<b>";</script><style>p{}</style><nav>menu</nav><aside>side</aside><footer>foot</footer>`,
			contains: []string{"<p>keep</p>"},
			excludes: []string{"script", "style", "menu", "side", "foot"},
		},
		{
			name:     "case insensitive across lines",
			html:     "<NAV class=\"top\">\n<a>x</a>\n</NAV><p>body</p>",
			contains: []string{"<p>body</p>"},
			excludes: []string{"NAV"},
		},
		{
			name:     "does not match longer tag names",
			html:     `<navigation>stays</navigation>`,
			contains: []string{"<navigation>stays</navigation>"},
		},
		{
			name:     "header is not stripped",
			html:     `<header>Title</header>`,
			contains: []string{"<header>Title</header>"},
		},
	}

	c := NewTagStripper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Clean(tt.html)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected %q in %q", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected %q removed from %q", unwanted, got)
				}
			}
		})
	}
}

func TestTagStripper_CustomTags(t *testing.T) {
	got, _ := NewTagStripper("form").Clean(`<form><input></form><script>x</script>`)
	if got != `<script>x</script>` {
		t.Errorf("Clean() = %q", got)
	}
}

type errorCleaner struct{}

func (c *errorCleaner) Clean(string) (string, error) { return "", errors.New("test error") }
func (c *errorCleaner) Name() string                 { return "error" }

func TestChainCleaner(t *testing.T) {
	t.Run("empty chain passes through", func(t *testing.T) {
		got, err := NewChain().Clean("unchanged")
		if err != nil || got != "unchanged" {
			t.Errorf("Clean() = %q, %v", got, err)
		}
	})

	t.Run("runs in order", func(t *testing.T) {
		c := NewChain(NewTagStripper(), NewMarkdown())
		got, err := c.Clean(`<nav>menu</nav><h1>Title</h1><p>Content</p>`)
		if err != nil {
			t.Fatalf("Clean() error = %v", err)
		}
		if !strings.Contains(got, "# Title") || strings.Contains(got, "menu") {
			t.Errorf("unexpected output %q", got)
		}
	})

	t.Run("stops at first error", func(t *testing.T) {
		_, err := NewChain(NewTagStripper(), &errorCleaner{}, NewMarkdown()).Clean("x")
		if err == nil || !strings.Contains(err.Error(), "test error") {
			t.Fatalf("expected propagated error, got %v", err)
		}
	})

	t.Run("name", func(t *testing.T) {
		if got := NewChain(NewTagStripper(), NewMarkdown()).Name(); got != "chain(regex->markdown)" {
			t.Errorf("Name() = %q", got)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatHTML, false},
		{"HTML", FormatHTML, false},
		{"text", FormatText, false},
		{"markdown", FormatMarkdown, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestConvert(t *testing.T) {
	fragment := `<h2>Heading</h2><p>First <b>bold</b> line.</p><p>Second<br>line.</p>`

	t.Run("html is unchanged", func(t *testing.T) {
		got, err := Convert(fragment, FormatHTML)
		if err != nil || got != fragment {
			t.Errorf("Convert() = %q, %v", got, err)
		}
	})

	t.Run("text keeps paragraph breaks", func(t *testing.T) {
		got, err := Convert(fragment, FormatText)
		if err != nil {
			t.Fatal(err)
		}
		want := "Heading\n\nFirst bold line.\n\nSecond\nline."
		if got != want {
			t.Errorf("Convert() = %q, want %q", got, want)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		got, err := Convert(fragment, FormatMarkdown)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(got, "## Heading") || !strings.Contains(got, "**bold**") {
			t.Errorf("unexpected markdown %q", got)
		}
	})
}

func TestMarkdownCleaner_CollapsesBlankLines(t *testing.T) {
	got := collapseBlankLines("a\n\n\n\nb\n  \n\nc\n")
	if got != "a\n\nb\n\nc" {
		t.Errorf("collapseBlankLines() = %q", got)
	}
}

func TestEngines_ExtractArticle(t *testing.T) {
	for _, name := range []string{EngineCleanread, EngineReadability, EngineTrafilatura} {
		t.Run(name, func(t *testing.T) {
			c, err := New(name)
			if err != nil {
				t.Fatal(err)
			}
			got, err := c.Clean(testArticle)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			if !strings.Contains(got, "Anemones, crabs and sea stars") {
				t.Errorf("expected article body in output, got %q", got)
			}
			if strings.Contains(got, "Copyright Example News") {
				t.Errorf("expected footer removed, got %q", got)
			}
		})
	}
}

func TestTrafilaturaCleaner_TextOutput(t *testing.T) {
	got, err := NewTrafilatura(&TrafilaturaConfig{Output: FormatText}).Clean(testArticle)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("expected plain text, got %q", got)
	}
}
