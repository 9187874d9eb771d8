// Package classifier decides whether a URL belongs to a supported recipe
// site or a recognized social-media content pattern. It performs no I/O.
package classifier

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	msgInvalidFormat = "Invalid URL format. Please check the URL and try again."
	msgNotSupported  = "This website is not currently supported. We support major recipe websites and social media platforms."
)

// supportedSites maps bare hostnames to display names.
var supportedSites = map[string]string{
	"allrecipes.com":    "AllRecipes",
	"foodnetwork.com":   "Food Network",
	"epicurious.com":    "Epicurious",
	"simplyrecipes.com": "Simply Recipes",
	"tasty.co":          "Tasty",
	"bonappetit.com":    "Bon Appétit",
	"seriouseats.com":   "Serious Eats",
	"food52.com":        "Food52",
	"thekitchn.com":     "The Kitchn",
	"delish.com":        "Delish",
}

// socialPatterns are checked before the domain table; first match wins.
var socialPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"instagram", regexp.MustCompile(`^https?://(www\.)?instagram\.com/(p|reel)/[\w-]+`)},
	{"tiktok", regexp.MustCompile(`^https?://(www\.)?tiktok\.com/@[\w.-]+/video/\d+`)},
	{"youtube", regexp.MustCompile(`^https?://(www\.)?youtube\.com/(watch\?v=|shorts/)[\w-]+`)},
}

// Classification is the result of classifying a URL. Source carries the
// platform name for social URLs or the site display name otherwise.
type Classification struct {
	IsValid bool   `json:"isValid"`
	Source  string `json:"source,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Classify determines whether a URL is supported without fetching it.
func Classify(rawURL string) Classification {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Classification{IsValid: false, Err: msgInvalidFormat}
	}

	for _, p := range socialPatterns {
		if p.re.MatchString(rawURL) {
			return Classification{IsValid: true, Source: p.name}
		}
	}

	if name, ok := SiteName(u.Hostname()); ok {
		return Classification{IsValid: true, Source: name}
	}

	return Classification{IsValid: false, Err: msgNotSupported}
}

// SiteName looks up a hostname (with or without a leading "www.") in the
// supported-sites table.
func SiteName(host string) (string, bool) {
	name, ok := supportedSites[strings.TrimPrefix(host, "www.")]
	return name, ok
}
