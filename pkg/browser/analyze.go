package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Link is a hyperlink found on the page.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// AnalyzeDocument is the output of the analyze operation: a structural
// summary of the page rather than its full content.
type AnalyzeDocument struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Headings    []string `json:"headings"`
	Links       []Link   `json:"links"`
	Timestamp   string   `json:"timestamp"`
}

// Caps keep the summary bounded on link-heavy pages.
const (
	maxHeadings = 50
	maxLinks    = 100
)

// analyzeMarkup parses raw markup and collects title, meta description,
// headings, and links.
func analyzeMarkup(rawHTML string) (*AnalyzeDocument, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := &AnalyzeDocument{
		Headings: []string{},
		Links:    []Link{},
	}
	walk(root, doc)
	return doc, nil
}

func walk(n *html.Node, doc *AnalyzeDocument) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "title":
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(nodeText(n))
			}
		case "meta":
			if attrValue(n, "name") == "description" && doc.Description == "" {
				doc.Description = strings.TrimSpace(attrValue(n, "content"))
			}
		case "h1", "h2", "h3", "h4", "h5", "h6":
			if len(doc.Headings) < maxHeadings {
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					doc.Headings = append(doc.Headings, text)
				}
			}
		case "a":
			if href := attrValue(n, "href"); href != "" && len(doc.Links) < maxLinks {
				doc.Links = append(doc.Links, Link{
					Text: strings.TrimSpace(nodeText(n)),
					Href: href,
				})
			}
		case "script", "style", "noscript":
			return
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, doc)
	}
}

// nodeText collects the text content beneath a node.
func nodeText(n *html.Node) string {
	var builder strings.Builder
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			builder.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			collect(child)
		}
	}
	collect(n)
	return builder.String()
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
