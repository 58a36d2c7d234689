// Package links turns source index pages and upstream feeds into
// ordered lists of canonical candidate article URLs.
package links

import (
	"net/url"
	"strings"
)

// trackingParams are stripped from every URL before it is used as an
// identity key. Matched case-insensitively by parameter name; any
// utm_* parameter is stripped as well.
var trackingParams = map[string]bool{
	"fbclid":  true,
	"gclid":   true,
	"mc_cid":  true,
	"mc_eid":  true,
	"igshid":  true,
	"si":      true,
	"ref":     true,
	"ref_src": true,
}

func isTrackingParam(name string) bool {
	name = strings.ToLower(name)
	return strings.HasPrefix(name, "utm_") || trackingParams[name]
}

// Canonicalize normalizes a URL to its identity form: fragment dropped,
// tracking query parameters removed, everything else untouched. Two URLs
// differing only by fragment or tracking parameters canonicalize
// identically. Malformed or scheme-less input is returned unchanged.
func Canonicalize(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}

	if u.RawQuery != "" {
		// Filter raw pairs directly so order, values and blank-valued
		// parameters survive untouched.
		pairs := strings.Split(u.RawQuery, "&")
		kept := pairs[:0]
		for _, pair := range pairs {
			name := pair
			if i := strings.IndexByte(pair, '='); i >= 0 {
				name = pair[:i]
			}
			if !isTrackingParam(name) {
				kept = append(kept, pair)
			}
		}
		u.RawQuery = strings.Join(kept, "&")
	}

	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// Absolute resolves a possibly-relative href against base, trims
// whitespace, and canonicalizes. Returns "" for empty or unparseable
// input.
func Absolute(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return Canonicalize(base.ResolveReference(ref).String())
}
