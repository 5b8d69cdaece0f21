package extract

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// chrome that Canvas page bodies carry but lessons never need
var strippedSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"header", "footer", "nav", "aside",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]",
}

// HTMLToMarkdown cleans Canvas page HTML and converts it to markdown,
// the form the transform prompt works best on.
func HTMLToMarkdown(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse page html: %w", err)
	}

	doc.Find(strings.Join(strippedSelectors, ", ")).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	content := doc.Find("body")
	if content.Length() == 0 {
		content = doc.Selection
	}
	cleaned, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("render cleaned html: %w", err)
	}

	md, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("convert html to markdown: %w", err)
	}

	return strings.TrimSpace(md), nil
}
