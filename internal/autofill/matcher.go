// Package autofill maps the platform's service identifiers to password
// entries, keeps the recent-items suggestion cache, and publishes the
// credential-identity index the OS uses to offer entries outside the app.
package autofill

import (
	"net/url"
	"strings"

	"github.com/dmitrival/quickvault/internal/models"
)

// IdentifierKind tags a ServiceIdentifier.
type IdentifierKind int

const (
	KindDomain IdentifierKind = iota
	KindURL
)

// ServiceIdentifier is the domain or URL hint supplied by the autofill
// subsystem to narrow candidate credentials.
type ServiceIdentifier struct {
	Kind  IdentifierKind
	Value string
}

func Domain(v string) ServiceIdentifier { return ServiceIdentifier{Kind: KindDomain, Value: v} }
func URL(v string) ServiceIdentifier    { return ServiceIdentifier{Kind: KindURL, Value: v} }

// Match returns the entries matching id, preserving the input order. Empty
// or unparseable identifiers match nothing; matching never errors.
//
// Domain identifiers match on a case-insensitive substring of the title.
// URL identifiers match when the request host and the entry's url or title
// contain each other in either direction, which deliberately tolerates
// scheme and partial subdomain differences.
func Match(entries []models.CredentialEntry, id ServiceIdentifier) []models.CredentialEntry {
	switch id.Kind {
	case KindDomain:
		return matchDomain(entries, id.Value)
	case KindURL:
		return matchURL(entries, id.Value)
	default:
		return nil
	}
}

func matchDomain(entries []models.CredentialEntry, domain string) []models.CredentialEntry {
	if domain == "" {
		return nil
	}
	needle := strings.ToLower(domain)

	var matched []models.CredentialEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}

func matchURL(entries []models.CredentialEntry, raw string) []models.CredentialEntry {
	host := hostOf(raw)
	if host == "" {
		return nil
	}

	var matched []models.CredentialEntry
	for _, e := range entries {
		if symmetricContains(host, strings.ToLower(e.URL)) ||
			symmetricContains(host, strings.ToLower(e.Title)) {
			matched = append(matched, e)
		}
	}
	return matched
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func symmetricContains(host, candidate string) bool {
	if candidate == "" {
		return false
	}
	return strings.Contains(host, candidate) || strings.Contains(candidate, host)
}
