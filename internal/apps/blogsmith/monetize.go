package blogsmith

import (
	"fmt"
	"regexp"
	"strings"
)

const paragraphClose = "</p>"

// insertAdSnippet places the ad snippet into the post HTML. The middle
// position splits at the middle paragraph boundary; content without
// paragraphs falls back to bottom placement.
func insertAdSnippet(content, snippet, position string) string {
	if snippet == "" {
		return content
	}

	switch position {
	case AdPositionTop:
		return snippet + "\n" + content
	case AdPositionMiddle:
		indices := paragraphBoundaries(content)
		if len(indices) >= 2 {
			at := indices[(len(indices)-1)/2] + len(paragraphClose)
			return content[:at] + "\n" + snippet + "\n" + content[at:]
		}
		fallthrough
	default:
		return content + "\n" + snippet
	}
}

func paragraphBoundaries(content string) []int {
	var indices []int
	offset := 0
	for {
		idx := strings.Index(content[offset:], paragraphClose)
		if idx < 0 {
			return indices
		}
		indices = append(indices, offset+idx)
		offset += idx + len(paragraphClose)
	}
}

// applyAffiliateLinks replaces each configured keyword with an anchor tag.
// Matching is case-insensitive and bounded at word edges, so "coffee" never
// rewrites "decaffeinated". The original casing of the matched text is kept.
func applyAffiliateLinks(content string, links []AffiliateLink) string {
	for _, link := range links {
		if link.Keyword == "" || link.URL == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(link.Keyword) + `\b`)
		if err != nil {
			continue
		}
		url := link.URL
		content = re.ReplaceAllStringFunc(content, func(match string) string {
			return fmt.Sprintf(`<a href="%s" target="_blank" rel="nofollow sponsored">%s</a>`, url, match)
		})
	}
	return content
}

// composePublishHTML builds the final HTML sent to the provider: ad snippet
// first (when enabled), then affiliate rewrites over the combined result.
func composePublishHTML(post *Post) string {
	content := post.Content
	if post.AdsenseEnabled && post.AdsenseCode != "" {
		content = insertAdSnippet(content, post.AdsenseCode, post.AdPosition)
	}
	if links := parseAffiliateLinks(post.AffiliateLinks); len(links) > 0 {
		content = applyAffiliateLinks(content, links)
	}
	return content
}
