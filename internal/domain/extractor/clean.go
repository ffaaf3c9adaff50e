package extractor

import (
	"html"
	"regexp"
	"strings"
)

// Each pass is a pure string function. Order matters: later passes assume the
// earlier ones already removed raw text elements and boilerplate blocks.

var (
	titlePattern            = regexp.MustCompile(`(?is)<title\b[^>]*>(.*?)</title\s*>`)
	metaNameContentPattern  = regexp.MustCompile(`(?is)<meta\b[^>]*\bname\s*=\s*["']description["'][^>]*\bcontent\s*=\s*"([^"]*)"|<meta\b[^>]*\bname\s*=\s*["']description["'][^>]*\bcontent\s*=\s*'([^']*)'`)
	metaContentNamePattern  = regexp.MustCompile(`(?is)<meta\b[^>]*\bcontent\s*=\s*"([^"]*)"[^>]*\bname\s*=\s*["']description["']|<meta\b[^>]*\bcontent\s*=\s*'([^']*)'[^>]*\bname\s*=\s*["']description["']`)
	commentPattern          = regexp.MustCompile(`(?s)<!--.*?-->`)
	unclosedCommentPattern  = regexp.MustCompile(`(?s)<!--.*$`)
	blockBreakPattern       = regexp.MustCompile(`(?i)<\s*(?:br|hr|/p|/div|/li|/ul|/ol|/h[1-6]|/tr|/table|/section|/article|/blockquote|/pre)\b[^>]*>`)
	anyTagPattern           = regexp.MustCompile(`<[^>]*>`)
	horizontalSpacePattern  = regexp.MustCompile(`[ \t\f\v\r\x{00a0}\x{200b}]+`)
	blankLinesPattern       = regexp.MustCompile(`\n{3,}`)
	nonContentElements      = elementPatterns("script", "style", "noscript", "svg")
	unclosedRawTextElements = unclosedPatterns("script", "style")
	boilerplateElements     = elementPatterns("nav", "header", "footer", "aside")
)

func elementPatterns(names ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(names))
	for _, name := range names {
		out = append(out, regexp.MustCompile(`(?is)<`+name+`\b[^>]*>.*?</`+name+`\s*>`))
	}
	return out
}

func unclosedPatterns(names ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(names))
	for _, name := range names {
		out = append(out, regexp.MustCompile(`(?is)<`+name+`\b[^>]*>.*$`))
	}
	return out
}

// extractTitle returns the first <title> text, entity decoded and trimmed.
func extractTitle(doc string) string {
	match := titlePattern.FindStringSubmatch(doc)
	if len(match) < 2 {
		return ""
	}
	return collapseInline(match[1])
}

// extractDescription reads the meta description in either attribute order.
func extractDescription(doc string) string {
	for _, pattern := range []*regexp.Regexp{metaNameContentPattern, metaContentNamePattern} {
		match := pattern.FindStringSubmatch(doc)
		if len(match) == 0 {
			continue
		}
		for _, group := range match[1:] {
			if group != "" {
				return collapseInline(group)
			}
		}
	}
	return ""
}

// stripNonContent removes script, style, noscript and svg elements and comments.
func stripNonContent(doc string) string {
	doc = commentPattern.ReplaceAllString(doc, " ")
	doc = unclosedCommentPattern.ReplaceAllString(doc, " ")
	for _, pattern := range nonContentElements {
		doc = pattern.ReplaceAllString(doc, " ")
	}
	for _, pattern := range unclosedRawTextElements {
		doc = pattern.ReplaceAllString(doc, " ")
	}
	return doc
}

// stripBoilerplate removes nav, header, footer and aside blocks.
func stripBoilerplate(doc string) string {
	for _, pattern := range boilerplateElements {
		doc = pattern.ReplaceAllString(doc, " ")
	}
	return doc
}

// stripTags turns block level tags into line breaks, drops every other tag
// and decodes entities.
func stripTags(doc string) string {
	doc = blockBreakPattern.ReplaceAllString(doc, "\n")
	doc = anyTagPattern.ReplaceAllString(doc, " ")
	return html.UnescapeString(doc)
}

// collapseWhitespace normalizes spaces per line and squeezes blank lines.
func collapseWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpacePattern.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLinesPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// cleanText runs the body passes in order and returns plain text.
func cleanText(doc string) string {
	doc = stripNonContent(doc)
	doc = stripBoilerplate(doc)
	doc = stripTags(doc)
	return collapseWhitespace(doc)
}

func collapseInline(s string) string {
	s = html.UnescapeString(anyTagPattern.ReplaceAllString(s, " "))
	return strings.Join(strings.Fields(s), " ")
}
