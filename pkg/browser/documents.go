package browser

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// SearchResult is one entry extracted from a results page.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchDocument is the output of the search operation.
type SearchDocument struct {
	Query     string         `json:"query"`
	Results   []SearchResult `json:"results"`
	Timestamp string         `json:"timestamp"`
}

// ScreenshotDocument is the output of the screenshot operation.
type ScreenshotDocument struct {
	URL        string `json:"url"`
	Screenshot string `json:"screenshot"`
	Timestamp  string `json:"timestamp"`
}

// TextDocument is the output of the get_text operation.
type TextDocument struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// HTMLDocument is the output of the get_html operation.
type HTMLDocument struct {
	URL       string `json:"url"`
	HTML      string `json:"html"`
	Timestamp string `json:"timestamp"`
}

// ClickExtractDocument is the output of the click_extract operation.
type ClickExtractDocument struct {
	URL       string `json:"url"`
	Clicked   string `json:"clicked"`
	Extracted string `json:"extracted"`
	Timestamp string `json:"timestamp"`
}

// RenderJSON pretty-prints a document for the terminal output contract.
func RenderJSON(doc interface{}) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return string(data), nil
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

// truncateRunes returns exactly the first limit characters of s. The cut
// is by code point, never mid-rune.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// searchResultScript pulls the top five organic results off a Google
// results page. Selectors track Google's markup and need occasional
// maintenance.
const searchResultScript = `
() => {
    const items = document.querySelectorAll('div.g');
    return Array.from(items).slice(0, 5).map(item => {
        const title = item.querySelector('h3')?.textContent || '';
        const link = item.querySelector('a')?.href || '';
        const snippet = item.querySelector('.VwiC3b')?.textContent || '';
        return { title, link, snippet };
    });
}`

// Search runs a Google search and extracts the top results.
func (m *Manager) Search(query string) (*SearchDocument, error) {
	doc := &SearchDocument{Query: query, Results: []SearchResult{}}

	err := m.withSession(func(s *Session) error {
		target := "https://www.google.com/search?q=" + url.QueryEscape(query)
		if err := s.Navigate(target); err != nil {
			return err
		}

		value, err := s.Evaluate(searchResultScript)
		if err != nil {
			return err
		}
		doc.Results = decodeSearchResults(value)
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.Timestamp = timestamp()
	return doc, nil
}

// decodeSearchResults converts the evaluate result into typed entries.
// Unexpected shapes are skipped rather than failing the whole search.
func decodeSearchResults(value interface{}) []SearchResult {
	results := []SearchResult{}
	items, ok := value.([]interface{})
	if !ok {
		return results
	}
	for _, item := range items {
		fields, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		str := func(key string) string {
			s, _ := fields[key].(string)
			return s
		}
		results = append(results, SearchResult{
			Title:   str("title"),
			Link:    str("link"),
			Snippet: str("snippet"),
		})
	}
	return results
}

// TakeScreenshot captures a full-page PNG of url at outputPath.
func (m *Manager) TakeScreenshot(pageURL, outputPath string) (*ScreenshotDocument, error) {
	err := m.withSession(func(s *Session) error {
		if err := s.Navigate(pageURL); err != nil {
			return err
		}
		return s.Screenshot(outputPath)
	})
	if err != nil {
		return nil, err
	}

	return &ScreenshotDocument{
		URL:        pageURL,
		Screenshot: outputPath,
		Timestamp:  timestamp(),
	}, nil
}

// GetText extracts the page title and body text, capped at the
// configured text limit.
func (m *Manager) GetText(pageURL string) (*TextDocument, error) {
	doc := &TextDocument{URL: pageURL}

	err := m.withSession(func(s *Session) error {
		if err := s.Navigate(pageURL); err != nil {
			return err
		}
		doc.Title = s.Title()

		text, err := s.BodyText()
		if err != nil {
			return err
		}
		doc.Text = truncateRunes(text, m.opts.TextLimit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.Timestamp = timestamp()
	return doc, nil
}

// GetHTML extracts the page markup, capped at the configured limit.
func (m *Manager) GetHTML(pageURL string) (*HTMLDocument, error) {
	doc := &HTMLDocument{URL: pageURL}

	err := m.withSession(func(s *Session) error {
		if err := s.Navigate(pageURL); err != nil {
			return err
		}

		html, err := s.Content()
		if err != nil {
			return err
		}
		doc.HTML = truncateRunes(html, m.opts.HTMLLimit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.Timestamp = timestamp()
	return doc, nil
}

// ClickExtract clicks one element and extracts text from another once
// the page settles.
func (m *Manager) ClickExtract(pageURL, clickSelector, extractSelector string) (*ClickExtractDocument, error) {
	doc := &ClickExtractDocument{URL: pageURL, Clicked: clickSelector}

	err := m.withSession(func(s *Session) error {
		if err := s.Navigate(pageURL); err != nil {
			return err
		}
		if err := s.Click(clickSelector); err != nil {
			return err
		}

		text, err := s.SelectorText(extractSelector)
		if err != nil {
			return err
		}
		doc.Extracted = text
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.Timestamp = timestamp()
	return doc, nil
}

// Analyze navigates to url and builds a structural summary of the page
// from its markup.
func (m *Manager) Analyze(pageURL string) (*AnalyzeDocument, error) {
	var doc *AnalyzeDocument

	err := m.withSession(func(s *Session) error {
		if err := s.Navigate(pageURL); err != nil {
			return err
		}

		html, err := s.Content()
		if err != nil {
			return err
		}

		parsed, err := analyzeMarkup(html)
		if err != nil {
			return err
		}
		doc = parsed
		doc.URL = pageURL
		return nil
	})
	if err != nil {
		return nil, err
	}

	doc.Timestamp = timestamp()
	return doc, nil
}
