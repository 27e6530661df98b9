package session

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fixed panel copy.
const (
	PanelTitle     = "CleanRead"
	LoadingMessage = "<p>Generating summary...</p>"
	FailedMessage  = "<p>Failed to generate summary. Please try again.</p>"
	EmptyMessage   = `<p>No summary available. Click "Summarize" to generate one.</p>`
	SummaryHeading = "Article Summary"
	DarkBodyClass  = "cleanread-dark"
)

const (
	accentColor = "#4a6fa5"
	activeText  = "#fff"
)

// palette holds the themed colours of the panel.
type palette struct {
	background, text       string
	border                 string
	title, muted           string
	buttonBack, buttonText string
}

var palettes = map[Theme]palette{
	ThemeLight: {
		background: "#fff", text: "#333",
		border: "#e1e4e8",
		title:  accentColor, muted: "#666",
		buttonBack: "#f5f7fa", buttonText: "#333",
	},
	ThemeDark: {
		background: "#1e1e1e", text: "#e1e1e1",
		border: "#444",
		title:  "#6d9eeb", muted: "#aaa",
		buttonBack: "#2d2d2d", buttonText: "#e1e1e1",
	},
}

// panelView is everything the panel shows.
type panelView struct {
	View        View
	ReadTime    string
	Body        string
	SummaryMode string
	ShowEmpty   bool
	Theme       Theme
	TextSize    int
}

// renderPanel builds the side panel from scratch, then restyles it for the
// theme and text size.
func renderPanel(pv panelView) (string, error) {
	root := element(atom.Div, "id", "cleanread-sidebar",
		"style", "position: fixed; top: 0; right: 0; width: 320px; height: 100vh; "+
			"box-shadow: -2px 0 10px rgba(0, 0, 0, 0.1); z-index: 9999; display: flex; "+
			"flex-direction: column; transform: translateX(0);")

	header := element(atom.Div, "class", "cleanread-header",
		"style", "padding: 16px; border-bottom: 1px solid; display: flex; justify-content: space-between; align-items: center;")
	title := element(atom.H2, "style", "margin: 0; font-size: 18px;")
	title.AppendChild(text(PanelTitle))
	closeBtn := element(atom.Button, "class", "cleanread-close",
		"data-action", ActionSetViewMode, "data-mode", string(ViewRaw),
		"style", "background: none; border: none; font-size: 24px; cursor: pointer;")
	closeBtn.AppendChild(text("×"))
	header.AppendChild(title)
	header.AppendChild(closeBtn)
	root.AppendChild(header)

	toggle := element(atom.Div, "class", "cleanread-toggle",
		"style", "display: flex; padding: 8px 16px; border-bottom: 1px solid;")
	for _, v := range []View{ViewClean, ViewSummary} {
		class := "cleanread-view"
		if v == pv.View {
			class += " active"
		}
		btn := element(atom.Button, "class", class,
			"data-action", ActionSetViewMode, "data-mode", string(v),
			"style", "flex: 1; padding: 8px; border: 1px solid; cursor: pointer; margin: 0 4px; border-radius: 4px;")
		btn.AppendChild(text(strings.ToUpper(string(v[:1])) + string(v[1:])))
		toggle.AppendChild(btn)
	}
	root.AppendChild(toggle)

	readTime := element(atom.Div, "class", "cleanread-readtime",
		"style", "padding: 8px 16px; font-size: 14px; border-bottom: 1px solid;")
	readTime.AppendChild(text("Estimated Read Time: " + pv.ReadTime))
	root.AppendChild(readTime)

	content := element(atom.Div, "class", "cleanread-body",
		"style", "flex: 1; padding: 16px; overflow-y: auto;")
	nodes, err := html.ParseFragment(strings.NewReader(pv.Body), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return "", fmt.Errorf("parse panel body: %w", err)
	}
	for _, n := range nodes {
		content.AppendChild(n)
	}
	if pv.ShowEmpty {
		btn := element(atom.Button, "class", "cleanread-summarize",
			"data-action", ActionSummarize, "data-mode", pv.SummaryMode,
			"style", "padding: 8px 16px; background-color: "+accentColor+"; color: white; border: none; "+
				"border-radius: 4px; cursor: pointer; margin-top: 16px;")
		btn.AppendChild(text("Summarize Now"))
		content.AppendChild(btn)
	}
	root.AppendChild(content)

	restyle(goquery.NewDocumentFromNode(root).Selection, pv.Theme, pv.TextSize)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render panel: %w", err)
	}
	return buf.String(), nil
}

// restyle applies the theme colours and text size to a built panel.
func restyle(panel *goquery.Selection, theme Theme, textSize int) {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[ThemeLight]
	}

	setStyle(panel, "background-color", p.background)
	setStyle(panel, "color", p.text)
	setStyle(panel.Find(".cleanread-header, .cleanread-toggle"), "border-bottom-color", p.border)
	setStyle(panel.Find("h2"), "color", p.title)
	setStyle(panel.Find(".cleanread-close"), "color", p.muted)

	panel.Find(".cleanread-view").Each(func(_ int, btn *goquery.Selection) {
		setStyle(btn, "border-color", p.border)
		if btn.HasClass("active") {
			setStyle(btn, "background-color", accentColor)
			setStyle(btn, "color", activeText)
			return
		}
		setStyle(btn, "background-color", p.buttonBack)
		setStyle(btn, "color", p.buttonText)
	})

	readTime := panel.Find(".cleanread-readtime")
	setStyle(readTime, "border-bottom-color", p.border)
	setStyle(readTime, "color", p.muted)

	content := panel.Find(".cleanread-body")
	setStyle(content, "background-color", p.background)
	setStyle(content, "color", p.text)
	setStyle(content, "font-size", fmt.Sprintf("%d%%", textSize))
}

// setStyle sets one CSS property in the inline style of every node in s,
// replacing an existing declaration in place.
func setStyle(s *goquery.Selection, prop, value string) {
	s.Each(func(_ int, el *goquery.Selection) {
		style, _ := el.Attr("style")
		var decls []string
		replaced := false
		for _, d := range strings.Split(style, ";") {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			name, _, _ := strings.Cut(d, ":")
			if strings.TrimSpace(name) == prop {
				d = prop + ": " + value
				replaced = true
			}
			decls = append(decls, d)
		}
		if !replaced {
			decls = append(decls, prop+": "+value)
		}
		el.SetAttr("style", strings.Join(decls, "; ")+";")
	})
}

// mainBody wraps a fragment in the reading container shown in place of the
// page body.
func mainBody(fragment string, heading string, theme Theme) string {
	class := "cleanread-container"
	if theme == ThemeDark {
		class += " " + DarkBodyClass
	}
	inner := "cleanread-content"
	if heading != "" {
		inner += " cleanread-summary"
		fragment = "<h1>" + html.EscapeString(heading) + "</h1>" + fragment
	}
	return `<div class="` + class + `"><div class="` + inner + `">` + fragment + `</div></div>`
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
