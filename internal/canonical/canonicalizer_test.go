package canonical

import (
	"testing"

	"talkmigrate/internal/models"
	"talkmigrate/internal/structures"
	"talkmigrate/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = "https://www.angrymetalguy.com"

func newCanonicalizer(cache *testutil.MockCache) CanonicalizerInterface {
	conf := &structures.Config{Site: structures.SiteConfig{Host: "www.angrymetalguy.com"}}
	return NewCanonicalizer(conf, cache)
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		want      string
		changed   bool
		rewritten bool
	}{
		{"already canonical", origin + "/review/", origin + "/review/", false, false},
		{"protocol only", "http://www.angrymetalguy.com/review/", origin + "/review/", true, true},
		{"escaped plus", "http://www.angrymetalguy.com/foo%2Bbar/", origin + "/foo+bar/", true, true},
		{"raw non ascii", origin + "/café", origin + "/caf%C3%A9", true, false},
		{"escaped non ascii", origin + "/caf%C3%A9", origin + "/caf%C3%A9", false, false},
		{"lowercase escape", origin + "/caf%c3%a9", origin + "/caf%C3%A9", true, false},
		{"stray percent", origin + "/100%-metal", origin + "/100%25-metal", true, false},
		{"query kept", origin + "/caf%C3%A9?p=1#c", origin + "/caf%C3%A9?p=1#c", false, false},
		{"bare origin", origin, origin, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newCanonicalizer(testutil.NewMockCache()).Canonicalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.URL)
			assert.Equal(t, tt.changed, res.Changed)
			assert.Equal(t, tt.rewritten, res.ProtocolRewritten)
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	c := newCanonicalizer(testutil.NewMockCache())
	for _, in := range []string{
		"http://www.angrymetalguy.com/foo%2Bbar/",
		origin + "/café",
		origin + "/100%-metal",
		origin + "/a%20b/",
	} {
		first, err := c.Canonicalize(in)
		require.NoError(t, err)
		second, err := c.Canonicalize(first.URL)
		require.NoError(t, err)
		assert.Equal(t, first.URL, second.URL, in)
		assert.False(t, second.Changed, in)
	}
}

func TestCanonicalize_UnexpectedHost(t *testing.T) {
	c := newCanonicalizer(testutil.NewMockCache())
	for _, in := range []string{
		"https://example.com/review/",
		"https://www.angrymetalguy.com.evil.net/review/",
		"ftp://www.angrymetalguy.com/review/",
	} {
		_, err := c.Canonicalize(in)
		var unexpected *models.UnexpectedHost
		require.ErrorAs(t, err, &unexpected, in)
		assert.Equal(t, in, unexpected.URL)
		assert.Equal(t, origin, unexpected.Expected)
	}
}

func TestCanonicalize_UsesCache(t *testing.T) {
	cache := testutil.NewMockCache()
	c := newCanonicalizer(cache)

	first, err := c.Canonicalize("http://www.angrymetalguy.com/foo%2Bbar/")
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Hits)

	second, err := c.Canonicalize("http://www.angrymetalguy.com/foo%2Bbar/")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Hits)
	assert.Equal(t, first, second)
}

func TestCanonicalize_ErrorsAreNotCached(t *testing.T) {
	cache := testutil.NewMockCache()
	_, err := newCanonicalizer(cache).Canonicalize("https://example.com/")
	require.Error(t, err)
	assert.Empty(t, cache.Data)
}

func TestResultEncoding(t *testing.T) {
	in := Result{URL: origin + "/x/", Changed: true, ProtocolRewritten: true}
	out, ok := decodeResult(encodeResult(in))
	require.True(t, ok)
	assert.Equal(t, in, out)

	_, ok = decodeResult(nil)
	assert.False(t, ok)
}
