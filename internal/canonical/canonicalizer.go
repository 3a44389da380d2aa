package canonical

import (
	"strings"

	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/structures"
)

const (
	insecurePrefix = "http://"
	securePrefix   = "https://"
)

// Result is the canonical form of one stored URL.
type Result struct {
	URL               string
	Changed           bool
	ProtocolRewritten bool
}

type CanonicalizerInterface interface {
	Canonicalize(rawURL string) (Result, error)
}

// Canonicalizer normalizes story URLs that must all belong to a single site host.
type Canonicalizer struct {
	origin string
	cache  providers.CacheProviderInterface
}

func NewCanonicalizer(conf *structures.Config, cache providers.CacheProviderInterface) CanonicalizerInterface {
	return &Canonicalizer{
		origin: securePrefix + conf.Site.Host,
		cache:  cache,
	}
}

func (c *Canonicalizer) Canonicalize(rawURL string) (Result, error) {
	if cached, ok := c.cache.Get(rawURL); ok {
		if res, ok := decodeResult(cached); ok {
			return res, nil
		}
	}
	res, err := c.canonicalize(rawURL)
	if err != nil {
		return Result{}, err
	}
	c.cache.Set(rawURL, encodeResult(res))
	return res, nil
}

func (c *Canonicalizer) canonicalize(rawURL string) (Result, error) {
	res := Result{}
	u := rawURL
	if strings.HasPrefix(u, insecurePrefix) {
		u = securePrefix + u[len(insecurePrefix):]
		res.ProtocolRewritten = true
	}

	if !strings.HasPrefix(u, c.origin) {
		return Result{}, &models.UnexpectedHost{URL: rawURL, Expected: c.origin}
	}
	rest := u[len(c.origin):]
	if rest != "" && !strings.ContainsRune("/?#", rune(rest[0])) {
		return Result{}, &models.UnexpectedHost{URL: rawURL, Expected: c.origin}
	}

	path, suffix := rest, ""
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		path, suffix = rest[:i], rest[i:]
	}

	switch {
	case strings.Contains(path, "%"):
		path = escapePath(unescapeLenient(path))
	case hasNonASCII(path):
		path = escapePath(path)
	}

	res.URL = c.origin + path + suffix
	res.Changed = res.URL != rawURL
	return res, nil
}

func encodeResult(r Result) []byte {
	flags := byte(0)
	if r.Changed {
		flags |= 1
	}
	if r.ProtocolRewritten {
		flags |= 2
	}
	return append([]byte{flags}, r.URL...)
}

func decodeResult(b []byte) (Result, bool) {
	if len(b) == 0 {
		return Result{}, false
	}
	return Result{
		URL:               string(b[1:]),
		Changed:           b[0]&1 != 0,
		ProtocolRewritten: b[0]&2 != 0,
	}, true
}
