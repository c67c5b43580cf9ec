// Package bloom deduplicates page URLs with a Bloom filter.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is used when NewURLSet is given a rate outside (0, 1).
const DefaultFalsePositiveRate = 0.001

// URLSet remembers which pages have been seen. URLs that differ only in
// fragment, host case or a trailing slash count as the same page.
// False positives are possible, false negatives are not.
type URLSet struct {
	f *bloom.BloomFilter
}

// NewURLSet creates a set sized for n expected URLs.
func NewURLSet(n uint, fpRate float64) *URLSet {
	if n == 0 {
		n = 1
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &URLSet{f: bloom.NewWithEstimates(n, fpRate)}
}

// Visit adds rawURL and reports whether it was new.
func (s *URLSet) Visit(rawURL string) bool {
	return !s.f.TestOrAddString(Normalize(rawURL))
}

// Seen reports whether rawURL may have been visited.
func (s *URLSet) Seen(rawURL string) bool {
	return s.f.TestString(Normalize(rawURL))
}

// Len returns the approximate number of URLs in the set.
func (s *URLSet) Len() uint {
	return uint(s.f.ApproximatedSize())
}

// Normalize reduces rawURL to the form used for deduplication.
// Unparseable input is returned trimmed.
func Normalize(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if len(u.Path) > 1 {
		u.Path = strings.TrimSuffix(u.Path, "/")
		u.RawPath = ""
	}
	if u.Path == "/" {
		u.Path = ""
	}
	return u.String()
}
