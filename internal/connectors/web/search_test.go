package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConnector points both search providers at test servers.
func newTestConnector(primaryURL, fallbackURL string) *Connector {
	return New(Config{
		searchBaseURL:   primaryURL,
		fallbackBaseURL: fallbackURL,
	})
}

func TestSearch_PrimaryResults(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a class="result__a" href="https://example.com/one">One</a>
			<a class="result__a" href="https://example.com/two">Two</a>
			<a class="result__a" href="https://example.com/one">Duplicate</a>
			<a class="result__a" href="https://www.youtube.com/watch?v=x">Video</a>
			<a class="other" href="https://example.com/ignored">Ignored</a>
		</body></html>`)
	}))
	defer primary.Close()

	c := newTestConnector(primary.URL, "http://127.0.0.1:0")
	links, err := c.Search(context.Background(), "some person", 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/one", "https://example.com/two"}, links)
}

func TestSearch_RedirectLinksUnwrapped(t *testing.T) {
	target := "https://example.org/profile"
	wrapped := "//duckduckgo.com/l/?uddg=" + url.QueryEscape(target)

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><a class="result__a" href="%s">Hit</a></body></html>`, wrapped)
	}))
	defer primary.Close()

	c := newTestConnector(primary.URL, "http://127.0.0.1:0")
	links, err := c.Search(context.Background(), "q", 5)

	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, target, links[0])
}

func TestSearch_MaxResultsCap(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>`)
		for i := 0; i < 20; i++ {
			fmt.Fprintf(w, `<a class="result__a" href="https://example.com/p%d">L</a>`, i)
		}
		fmt.Fprint(w, `</body></html>`)
	}))
	defer primary.Close()

	c := newTestConnector(primary.URL, "http://127.0.0.1:0")
	links, err := c.Search(context.Background(), "q", 3)

	require.NoError(t, err)
	assert.Len(t, links, 3)
}

func TestSearch_FallbackWhenPrimaryEmpty(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>no results here</body></html>`)
	}))
	defer primary.Close()

	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<li class="b_algo"><h2><a href="https://example.net/bio">Bio</a></h2></li>
			<h2><a href="https://example.net/news">News</a></h2>
		</body></html>`)
	}))
	defer fallback.Close()

	c := newTestConnector(primary.URL, fallback.URL)
	links, err := c.Search(context.Background(), "q", 10)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.net/bio", "https://example.net/news"}, links)
}

func TestSearch_BothProvidersDown(t *testing.T) {
	c := newTestConnector("http://127.0.0.1:0", "http://127.0.0.1:0")
	links, err := c.Search(context.Background(), "q", 10)

	assert.Empty(t, links)
	assert.Error(t, err)
}

func TestNormalizeRedirectLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain link untouched",
			in:   "https://example.com/a",
			want: "https://example.com/a",
		},
		{
			name: "redirect unwrapped",
			in:   "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fb",
			want: "https://example.com/b",
		},
		{
			name: "redirect without target untouched",
			in:   "https://duckduckgo.com/l/?other=1",
			want: "https://duckduckgo.com/l/?other=1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeRedirectLink(tt.in))
		})
	}
}
