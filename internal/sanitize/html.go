package sanitize

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// blogPolicy allows the formatting the admin editor produces: basic text
// markup, headings, links, images and a handful of inline styles.
func blogPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()
		p.AllowStandardURLs()
		p.AllowURLSchemes("http", "https", "mailto")

		p.AllowElements(
			"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "p", "ul", "ol", "li",
			"b", "i", "strong", "em", "strike", "s", "u", "code", "pre", "hr", "br",
			"div", "span", "table", "thead", "tbody", "tr", "th", "td", "caption",
			"abbr", "nl", "dl", "dt", "dd", "sub", "sup", "small", "figure", "figcaption",
		)
		p.AllowAttrs("href", "name", "target", "rel").OnElements("a")
		p.AllowAttrs("src", "alt").OnElements("img")
		p.AllowAttrs("width", "height").Matching(regexp.MustCompile(`^[0-9]+(px|%)?$`)).OnElements("img")
		p.AllowAttrs("style").OnElements("img", "span", "p")
		p.AllowAttrs("class").Globally()
		p.AllowStyles("color", "text-align", "font-size", "font-weight", "text-decoration").Globally()
		p.RequireNoFollowOnLinks(false)
		policy = p
	})
	return policy
}

// BlogHTML strips scripts, event handlers and unsafe URLs from post bodies.
func BlogHTML(raw string) string {
	return blogPolicy().Sanitize(raw)
}
