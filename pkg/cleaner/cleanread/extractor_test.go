package cleanread

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("nil config uses default", func(t *testing.T) {
		e := New(nil)
		if e.config == nil {
			t.Fatal("expected non-nil config")
		}
		if !e.config.StripScripts {
			t.Error("expected StripScripts to be true by default")
		}
		if e.config.WordsPerMinute != DefaultWordsPerMinute {
			t.Errorf("WordsPerMinute = %d, want %d", e.config.WordsPerMinute, DefaultWordsPerMinute)
		}
	})

	t.Run("name", func(t *testing.T) {
		if got := New(nil).Name(); got != "cleanread" {
			t.Errorf("Name() = %q, want cleanread", got)
		}
	})
}

func TestExtract_Container(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		strategy  Strategy
		container string
		contains  []string
		excludes  []string
	}{
		{
			name: "article wins over main",
			html: `<html><body>
				<main><p>main text</p></main>
				<article><p>article text</p></article>
			</body></html>`,
			strategy:  StrategySemantic,
			container: "article",
			contains:  []string{"article text"},
			excludes:  []string{"main text"},
		},
		{
			name: "first article in document order",
			html: `<body><article id="a"><p>first</p></article><article id="b"><p>second</p></article></body>`,
			strategy:  StrategySemantic,
			container: "article#a",
			contains:  []string{"first"},
			excludes:  []string{"second"},
		},
		{
			name:      "class selector before main",
			html:      `<body><main><p>main</p></main><div class="post featured"><p>post body</p></div></body>`,
			strategy:  StrategySemantic,
			container: "div.featured.post",
			contains:  []string{"post body"},
			excludes:  []string{"<p>main</p>"},
		},
		{
			name:      "content id",
			html:      `<body><div id="content"><p>by id</p></div><div><p>other</p></div></body>`,
			strategy:  StrategySemantic,
			container: "div#content",
			contains:  []string{"by id"},
		},
		{
			name: "density fallback picks largest text block",
			html: `<body>
				<div id="teaser"><p>short</p></div>
				<div id="story"><p>` + strings.Repeat("long paragraph text ", 20) + `</p><p>more story</p></div>
			</body>`,
			strategy:  StrategyDensity,
			container: "div#story",
			contains:  []string{"more story"},
			excludes:  []string{"short"},
		},
		{
			name:      "body when nothing scores",
			html:      `<body><div>no paragraphs here</div></body>`,
			strategy:  StrategyBody,
			container: "body",
			contains:  []string{"no paragraphs here"},
		},
		{
			name:      "body when paragraphs sit directly in body",
			html:      `<body><p>direct one</p><p>direct two</p></body>`,
			strategy:  StrategyBody,
			container: "body",
			contains:  []string{"direct one", "direct two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := New(nil).Extract(tt.html)

			if result.Strategy != tt.strategy {
				t.Errorf("Strategy = %q, want %q", result.Strategy, tt.strategy)
			}
			if result.Container != tt.container {
				t.Errorf("Container = %q, want %q", result.Container, tt.container)
			}
			for _, want := range tt.contains {
				if !strings.Contains(result.HTML, want) {
					t.Errorf("expected HTML to contain %q, got %q", want, result.HTML)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(result.HTML, unwanted) {
					t.Errorf("expected HTML to not contain %q, got %q", unwanted, result.HTML)
				}
			}
		})
	}
}

func TestExtract_RemovesDistractions(t *testing.T) {
	html := `<html><head><style>p{}</style></head><body>
		<header>Site header</header>
		<nav>Menu</nav>
		<article>
			<h1>Title</h1>
			<div class="share-buttons">Share me</div>
			<p>Story body.</p>
			<iframe src="https://ads.example"></iframe>
			<div class="ad">Buy now</div>
			<script>track()</script>
			<aside>Aside</aside>
			<div class="author-bio">About the author</div>
		</article>
		<footer>Copyright</footer>
	</body></html>`

	result := New(nil).Extract(html)

	for _, unwanted := range []string{"Site header", "Menu", "Share me", "iframe", "Buy now", "track()", "Aside", "About the author", "Copyright"} {
		if strings.Contains(result.HTML, unwanted) {
			t.Errorf("expected %q to be removed, got %q", unwanted, result.HTML)
		}
	}
	for _, want := range []string{"<h1>Title</h1>", "<p>Story body.</p>"} {
		if !strings.Contains(result.HTML, want) {
			t.Errorf("expected %q in %q", want, result.HTML)
		}
	}

	if result.Stats.TotalElementsRemoved() == 0 {
		t.Error("expected removals to be recorded")
	}
	if result.Stats.SelectorMatches["header"] != 1 {
		t.Errorf("header matches = %d, want 1", result.Stats.SelectorMatches["header"])
	}
}

func TestExtract_DenylistAppliesBeforeContainerSearch(t *testing.T) {
	// The only article sits inside an aside, so it is gone before the
	// priority search runs.
	html := `<body><aside><article><p>promo story</p></article></aside>
		<div class="body"><p>real story text here</p></div></body>`

	result := New(nil).Extract(html)

	if result.Strategy != StrategyDensity {
		t.Fatalf("Strategy = %q, want density", result.Strategy)
	}
	if strings.Contains(result.HTML, "promo story") {
		t.Errorf("denylisted content leaked: %q", result.HTML)
	}
}

func TestExtract_KeepSelectors(t *testing.T) {
	html := `<body><article>
		<aside class="pullquote">Keep this quote</aside>
		<aside>Drop this aside</aside>
		<p>Text</p>
	</article></body>`

	result := New(&Config{KeepSelectors: []string{".pullquote"}}).Extract(html)

	if !strings.Contains(result.HTML, "Keep this quote") {
		t.Errorf("expected kept element, got %q", result.HTML)
	}
	if strings.Contains(result.HTML, "Drop this aside") {
		t.Errorf("expected aside removal, got %q", result.HTML)
	}
	if result.Stats.ElementsKept != 1 {
		t.Errorf("ElementsKept = %d, want 1", result.Stats.ElementsKept)
	}
}

func TestExtract_RemoveSelectorsAndCustomPriority(t *testing.T) {
	html := `<body>
		<article><p>article</p></article>
		<section class="story"><p>story</p><div class="byline">By someone</div></section>
	</body>`

	result := New(&Config{
		StripScripts:      true,
		RemoveSelectors:   []string{".byline"},
		PrioritySelectors: []string{".story"},
	}).Extract(html)

	if result.Container != "section.story" {
		t.Errorf("Container = %q, want section.story", result.Container)
	}
	if strings.Contains(result.HTML, "By someone") {
		t.Errorf("expected byline removed, got %q", result.HTML)
	}
}

func TestExtract_ScriptsKeptWhenDisabled(t *testing.T) {
	html := `<body><article><p>x</p><script>var a = 1;</script></article></body>`

	result := New(&Config{StripScripts: false}).Extract(html)

	if !strings.Contains(result.HTML, "<script>") {
		t.Errorf("expected script to survive, got %q", result.HTML)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	html := `<body><div class="wrap"><div class="col"><p>Alpha beta.</p></div><div class="col"><p>Gamma.</p></div></div>
		<div class="share">x</div></body>`

	e := New(nil)
	first := e.Extract(html)
	second := e.Extract(html)

	if first.HTML != second.HTML {
		t.Errorf("extraction not idempotent:\n%q\n%q", first.HTML, second.HTML)
	}
	if first.Container != second.Container || first.WordCount != second.WordCount {
		t.Errorf("metadata differs: %+v vs %+v", first, second)
	}
}

func TestExtract_MalformedMarkup(t *testing.T) {
	html := `<div><p>Unclosed paragraph<div><span>Nested <b>bold</div>`

	result := New(nil).Extract(html)

	if result.HTML == "" {
		t.Fatal("expected content from malformed markup")
	}
	if !strings.Contains(result.Text, "Unclosed paragraph") {
		t.Errorf("expected text to survive, got %q", result.Text)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	result := New(nil).Extract("")

	if result.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", result.WordCount)
	}
	if got := result.ReadTimeLabel(); got != "--" {
		t.Errorf("ReadTimeLabel() = %q, want --", got)
	}
	if result.Strategy != StrategyBody {
		t.Errorf("Strategy = %q, want body", result.Strategy)
	}
}

func TestExtract_ReadTime(t *testing.T) {
	tests := []struct {
		words int
		label string
	}{
		{0, "--"},
		{1, "1 min"},
		{225, "1 min"},
		{226, "2 mins"},
		{450, "2 mins"},
		{451, "3 mins"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			html := "<article><p>" + strings.Repeat("word ", tt.words) + "</p></article>"
			result := New(nil).Extract(html)

			if result.WordCount != tt.words {
				t.Errorf("WordCount = %d, want %d", result.WordCount, tt.words)
			}
			if got := result.ReadTimeLabel(); got != tt.label {
				t.Errorf("ReadTimeLabel() = %q, want %q", got, tt.label)
			}
		})
	}
}

func TestClean_ReturnsContainerMarkup(t *testing.T) {
	out, err := New(nil).Clean(`<body><nav>x</nav><article><p>hello</p></article></body>`)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if out != "<p>hello</p>" {
		t.Errorf("Clean() = %q, want <p>hello</p>", out)
	}
}
