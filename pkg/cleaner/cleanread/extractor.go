package cleanread

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Extractor finds the main content of a page. It is safe for concurrent
// use; every call parses its own copy of the input.
// It implements the cleaner.Cleaner interface.
type Extractor struct {
	config *Config
}

// New creates an Extractor. A nil config means DefaultConfig().
func New(config *Config) *Extractor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Extractor{config: config}
}

// Name returns the engine name.
func (e *Extractor) Name() string {
	return "cleanread"
}

// Clean returns the extracted container markup.
func (e *Extractor) Clean(raw string) (string, error) {
	return e.Extract(raw).HTML, nil
}

// Extract runs the extraction pipeline on raw markup. It never fails:
// unparseable input degrades to the tag-stripped input with a warning.
func (e *Extractor) Extract(raw string) *Result {
	start := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.InputBytes = len(raw)

	parseStart := time.Now()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	result.Stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		result.AddWarning("parse", "markup parse failed, using stripped input", err.Error())
		result.HTML = raw
		result.Text = strings.TrimSpace(tagPattern.ReplaceAllString(raw, " "))
		result.Strategy = StrategyBody
		e.finish(result, start)
		return result
	}

	e.removeDistractions(doc, result)

	container, strategy, sig := e.findContainer(doc, result)
	result.Strategy = strategy
	result.Container = sig

	inner, err := container.Html()
	if err != nil {
		result.AddWarning("output", "rendering container failed", err.Error())
	}
	result.HTML = strings.TrimSpace(inner)
	result.Text = container.Text()

	e.finish(result, start)
	return result
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func (e *Extractor) finish(result *Result, start time.Time) {
	result.WordCount = CountWords(result.Text)
	result.ReadTime = ReadTimeMinutes(result.WordCount, e.config.wordsPerMinute())
	result.Stats.OutputBytes = len(result.HTML)
	result.Stats.TotalDuration = time.Since(start)
}

func (e *Extractor) removeDistractions(doc *goquery.Document, result *Result) {
	for _, selector := range e.config.removals() {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		result.Stats.RecordSelectorMatch(selector, selection.Length())
		selection.Each(func(_ int, s *goquery.Selection) {
			if e.shouldKeep(s) {
				result.Stats.ElementsKept++
				return
			}
			result.Stats.RecordRemoval(goquery.NodeName(s))
			s.Remove()
		})
	}
}

// shouldKeep reports whether s matches, or contains, a keep selector.
func (e *Extractor) shouldKeep(s *goquery.Selection) bool {
	for _, selector := range e.config.KeepSelectors {
		if s.Is(selector) || s.Find(selector).Length() > 0 {
			return true
		}
	}
	return false
}

func (e *Extractor) findContainer(doc *goquery.Document, result *Result) (*goquery.Selection, Strategy, string) {
	for _, selector := range e.config.priority() {
		if match := doc.Find(selector).First(); match.Length() > 0 {
			return match, StrategySemantic, signatureOf(match.Nodes[0]).String()
		}
	}

	if node, sig := densest(doc, result.Stats); node != nil {
		return doc.FindNodes(node), StrategyDensity, sig.String()
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		result.AddWarning("container", "document has no body", "")
		return doc.Selection, StrategyBody, "document"
	}
	return body, StrategyBody, "body"
}
