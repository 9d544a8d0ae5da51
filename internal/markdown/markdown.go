package markdown

import (
	"bytes"
	"strings"

	"github.com/russross/blackfriday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockedTags = map[string]bool{
	"script": true,
	"style":  true,
	"iframe": true,
	"object": true,
	"embed":  true,
	"form":   true,
}

// Render converts markdown to HTML and strips anything that could execute in
// the browser: blocked elements, on* attributes and javascript: URLs.
func Render(src string) string {
	rendered := blackfriday.MarkdownCommon([]byte(src))
	return sanitize(rendered)
}

func sanitize(in []byte) string {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(bytes.NewReader(in), ctx)
	if err != nil {
		return html.EscapeString(string(in))
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		clean(n)
		if err := html.Render(&buf, n); err != nil {
			return html.EscapeString(string(in))
		}
	}
	return buf.String()
}

func clean(n *html.Node) {
	var next *html.Node
	for child := n.FirstChild; child != nil; child = next {
		next = child.NextSibling
		if child.Type == html.ElementNode && blockedTags[child.Data] {
			n.RemoveChild(child)
			continue
		}
		clean(child)
	}

	if n.Type != html.ElementNode {
		return
	}
	kept := n.Attr[:0]
	for _, attr := range n.Attr {
		if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
			continue
		}
		if (attr.Key == "href" || attr.Key == "src") &&
			strings.HasPrefix(strings.ToLower(strings.TrimSpace(attr.Val)), "javascript:") {
			continue
		}
		kept = append(kept, attr)
	}
	n.Attr = kept
}
