package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Navigate loads url and waits until network activity settles.
func (s *Session) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Title returns the page title, empty on error.
func (s *Session) Title() string {
	title, err := s.page.Title()
	if err != nil {
		return ""
	}
	return title
}

// BodyText returns the rendered text of the page body.
func (s *Session) BodyText() (string, error) {
	value, err := s.page.Evaluate("() => document.body.innerText")
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("unexpected text extraction result: %T", value)
	}
	return text, nil
}

// Content returns the full page markup.
func (s *Session) Content() (string, error) {
	html, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("markup extraction failed: %w", err)
	}
	return html, nil
}

// Screenshot captures the full page as a PNG at path.
func (s *Session) Screenshot(path string) error {
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("screenshot failed: %w", err)
	}
	return nil
}

// Click clicks the element addressed by selector and waits for the page
// to settle again.
func (s *Session) Click(selector string) error {
	if err := s.page.Click(selector); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	if err := s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		return fmt.Errorf("wait after click failed: %w", err)
	}
	return nil
}

// SelectorText extracts the text content of the element addressed by a
// CSS selector.
func (s *Session) SelectorText(selector string) (string, error) {
	text, err := s.page.Locator(selector).TextContent()
	if err != nil {
		return "", fmt.Errorf("text extraction for %q failed: %w", selector, err)
	}
	return text, nil
}

// Evaluate runs a JavaScript expression in the page and returns its
// result.
func (s *Session) Evaluate(script string) (interface{}, error) {
	value, err := s.page.Evaluate(script)
	if err != nil {
		return nil, fmt.Errorf("script evaluation failed: %w", err)
	}
	return value, nil
}
