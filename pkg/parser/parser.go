package parser

import (
	"bufio"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Parser struct{}

// nonText lists elements whose content never reaches the word counter.
// Link targets live in attributes and are dropped implicitly; anchor text is kept.
const nonText = "script,style,noscript,template,img,picture,svg,iframe,object"

// PlainText strips markup from an HTML fragment and returns its readable
// text. Fragments may be cut mid-tag; the html5 parser recovers from that.
func (p *Parser) PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	doc.Find(nonText).Remove()

	var b strings.Builder
	doc.Find("body").Each(func(i int, s *goquery.Selection) {
		collectText(s, &b)
	})
	if b.Len() == 0 {
		collectText(doc.Selection, &b)
	}

	return normalizeText(b.String()), nil
}

// collectText writes every text node below s separated by newlines so that
// adjacent block elements do not glue their words together.
func collectText(s *goquery.Selection, b *strings.Builder) {
	s.Contents().Each(func(i int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
			b.WriteByte('\n')
			return
		}
		collectText(c, b)
	})
}

// normalizeText cleans up a string by trimming space and removing excess newlines.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), len(input)+1)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			// Write the line and a single space for separation
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	// Return the result, trimming the final space
	return strings.TrimSpace(b.String())
}
