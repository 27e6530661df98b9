package cleanread

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// signature identifies an element by tag, id and class set. Elements with
// equal signatures share one accumulator, so two sibling "div.col" nodes
// pool their paragraph text.
type signature struct {
	tag     string
	id      string
	classes string // sorted, de-duplicated, space-joined
}

func signatureOf(n *html.Node) signature {
	sig := signature{tag: n.Data}
	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			sig.id = a.Val
		case "class":
			sig.classes = normalizeClasses(a.Val)
		}
	}
	return sig
}

func normalizeClasses(v string) string {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return ""
	}
	sort.Strings(fields)
	out := fields[:1]
	for _, f := range fields[1:] {
		if f != out[len(out)-1] {
			out = append(out, f)
		}
	}
	return strings.Join(out, " ")
}

// String renders tag#id.class1.class2.
func (s signature) String() string {
	var sb strings.Builder
	sb.WriteString(s.tag)
	if s.id != "" {
		sb.WriteByte('#')
		sb.WriteString(s.id)
	}
	if s.classes != "" {
		sb.WriteByte('.')
		sb.WriteString(strings.ReplaceAll(s.classes, " ", "."))
	}
	return sb.String()
}

type densityBlock struct {
	node   *html.Node // first element seen with this signature
	length int
}

// densest walks every paragraph's ancestors up to but excluding body and
// returns the element whose signature accumulated the most paragraph text.
// Ties go to the signature seen first. It returns nil when no ancestor
// accumulated any text.
func densest(doc *goquery.Document, stats *Stats) (*html.Node, signature) {
	blocks := make(map[signature]*densityBlock)
	var order []signature

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		stats.ParagraphsScored++
		length := utf8.RuneCountInString(p.Text())
		for n := p.Nodes[0].Parent; n != nil && n.Type == html.ElementNode && n.Data != "body"; n = n.Parent {
			sig := signatureOf(n)
			b, ok := blocks[sig]
			if !ok {
				b = &densityBlock{node: n}
				blocks[sig] = b
				order = append(order, sig)
			}
			b.length += length
		}
	})

	var (
		best    *densityBlock
		bestSig signature
	)
	for _, sig := range order {
		b := blocks[sig]
		if b.length > 0 && (best == nil || b.length > best.length) {
			best, bestSig = b, sig
		}
	}
	if best == nil {
		return nil, signature{}
	}
	return best.node, bestSig
}
