package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlight-labs/guestscope-cli/internal/core/domain"
)

func TestFetch_ExtractsArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>
			<head><title>  Profile:   Jane  </title><style>p{color:red}</style></head>
			<body>
				<header><p>Site chrome</p></header>
				<nav><p>Menu</p></nav>
				<div class="newsletter-signup"><p>Subscribe now!</p></div>
				<main>
					<p>Jane is   a writer.</p>
					<p>She lives
					abroad.</p>
				</main>
				<footer><p>Copyright</p></footer>
			</body>
		</html>`)
	}))
	defer srv.Close()

	c := New(Config{})
	rec := c.Fetch(context.Background(), srv.URL)

	assert.Equal(t, domain.SourceWebArticle, rec.SourceType)
	assert.Equal(t, srv.URL, rec.URL)
	assert.Equal(t, "Profile: Jane", rec.Title)
	assert.Equal(t, "Jane is a writer. She lives abroad.", rec.Text)
	assert.NotEmpty(t, rec.FetchedAt)
	assert.Equal(t, domain.TextHash(rec.Text), rec.TextHash)
	require.NoError(t, rec.Validate())
}

func TestFetch_FallsBackToFullText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div>No paragraphs, just a div.</div></body></html>`)
	}))
	defer srv.Close()

	c := New(Config{})
	rec := c.Fetch(context.Background(), srv.URL)

	assert.Equal(t, domain.SourceWebArticle, rec.SourceType)
	assert.Equal(t, "No paragraphs, just a div.", rec.Text)
}

func TestFetch_UnreachableURLDegrades(t *testing.T) {
	// Reserve then close a server so the address refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead := srv.URL
	srv.Close()

	c := New(Config{})
	rec := c.Fetch(context.Background(), dead)

	assert.Equal(t, domain.SourceWebLink, rec.SourceType)
	assert.Equal(t, dead, rec.URL)
	assert.Empty(t, rec.Text)
	assert.Empty(t, rec.TextHash)
	require.NoError(t, rec.Validate())
}

func TestFetch_ServerErrorDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{})
	rec := c.Fetch(context.Background(), srv.URL)

	assert.Equal(t, domain.SourceWebLink, rec.SourceType)
	assert.Empty(t, rec.Text)
}
