package fetch

import "net/url"

// ProxyTemplate rewrites a target URL into a proxied fetch URL.
type ProxyTemplate func(target string) string

// DefaultProxies returns the ordered fallback list tried after a failed
// direct fetch.
func DefaultProxies() []ProxyTemplate {
	return []ProxyTemplate{
		func(target string) string {
			return "https://api.allorigins.win/raw?url=" + url.QueryEscape(target)
		},
		func(target string) string {
			return "https://cors-anywhere.herokuapp.com/" + target
		},
	}
}

const (
	userAgent    = "Mozilla/5.0 (compatible; RecipeBot/1.0)"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
)
