package jsonview

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	viewPolicyOnce sync.Once
	viewPolicy     *bluemonday.Policy
)

var classNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// SanitizeHTML strips everything from markup that a rendered view never contains.
func SanitizeHTML(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}
	return viewSanitizer().Sanitize(markup)
}

func viewSanitizer() *bluemonday.Policy {
	viewPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements(
			"div", "table", "thead", "tbody", "tr", "th", "td",
			"ul", "li", "a", "img", "h1", "h2", "h3", "h4", "h5", "h6",
		)

		policy.AllowAttrs("class").Matching(classNamePattern).OnElements("div")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("src", "alt").OnElements("img")

		policy.RequireParseableURLs(true)
		policy.AllowRelativeURLs(true)
		policy.AllowURLSchemes("http", "https")

		viewPolicy = policy
	})
	return viewPolicy
}
