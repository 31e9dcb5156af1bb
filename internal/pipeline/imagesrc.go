package pipeline

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ImageSources returns the src attribute of every <img> element in
// htmlContent, in document order. Empty src values are skipped.
// Both full documents and fragments are accepted.
func ImageSources(htmlContent string) ([]string, error) {
	doc, err := parseHTML(htmlContent)
	if err != nil {
		return nil, err
	}

	var sources []string
	collectImageSources(doc, &sources)
	return sources, nil
}

// parseHTML parses HTML content, handling both full documents and fragments.
func parseHTML(content string) (*html.Node, error) {
	trimmed := strings.ToLower(strings.TrimSpace(content))

	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		return html.Parse(strings.NewReader(content))
	}

	// Fragment: parse with body context to avoid wrapping
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

func collectImageSources(n *html.Node, sources *[]string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for _, attr := range n.Attr {
			if attr.Key == "src" && attr.Val != "" {
				*sources = append(*sources, attr.Val)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectImageSources(c, sources)
	}
}

// LocalImagePath maps an image reference under base to a path relative to the
// site root, e.g. "/blog/Images/a.png?v=2" with base "/blog/" yields
// "Images/a.png". ok is false for references outside base/Images/.
func LocalImagePath(src, base string) (rel string, ok bool) {
	if !strings.HasPrefix(src, base+"Images/") {
		return "", false
	}
	rel = strings.TrimPrefix(src, base)
	if i := strings.IndexAny(rel, "?#"); i != -1 {
		rel = rel[:i]
	}
	return rel, true
}
