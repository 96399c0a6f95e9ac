package media

import (
	"net/url"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePage(t *testing.T, raw string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func TestFindHeroImageOpenGraph(t *testing.T) {
	doc := parsePage(t, `<html><head>
		<meta property="og:image" content="https://example.com/dish.jpg">
		<meta name="twitter:image" content="https://example.com/other.jpg">
	</head><body></body></html>`)

	assert.Equal(t, "https://example.com/dish.jpg", findHeroImage(doc))
}

func TestFindHeroImageTwitterFallback(t *testing.T) {
	doc := parsePage(t, `<html><head>
		<meta name="twitter:image" content="https://example.com/card.jpg">
	</head><body></body></html>`)

	assert.Equal(t, "https://example.com/card.jpg", findHeroImage(doc))
}

func TestFindHeroImageJSONLDFallback(t *testing.T) {
	doc := parsePage(t, `<html><head>
		<script type="application/ld+json">
		{"@context": "https://schema.org", "@type": "Recipe", "name": "Feijoada", "image": "/img/feijoada.jpg"}
		</script>
	</head><body></body></html>`)

	assert.Equal(t, "/img/feijoada.jpg", findHeroImage(doc))
}

func TestFindHeroImageJSONLDGraphAndImageObject(t *testing.T) {
	doc := parsePage(t, `<html><head>
		<script type="application/ld+json">
		{"@graph": [
			{"@type": "WebSite", "name": "site"},
			{"@type": ["Recipe", "Thing"], "image": {"@type": "ImageObject", "url": "https://example.com/hero.jpg"}}
		]}
		</script>
	</head><body></body></html>`)

	assert.Equal(t, "https://example.com/hero.jpg", findHeroImage(doc))
}

func TestFindHeroImageMissing(t *testing.T) {
	doc := parsePage(t, `<html><head><title>nada</title></head><body><p>oi</p></body></html>`)
	assert.Equal(t, "", findHeroImage(doc))
}

func TestResolveURLRelative(t *testing.T) {
	base, err := url.Parse("https://example.com/recipes/bolo")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/img/bolo.jpg", resolveURL(base, "/img/bolo.jpg"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", resolveURL(base, "https://cdn.example.com/a.jpg"))
	assert.Equal(t, "", resolveURL(base, ""))
}

func TestExtractVisibleTextStripsChrome(t *testing.T) {
	doc := parsePage(t, `<html><head>
		<style>body { color: red }</style>
		<script>alert("x")</script>
	</head><body>
		<nav>menu items</nav>
		<header>site header</header>
		<!-- a comment -->
		<p>Misture a farinha com o a&ccedil;&uacute;car.</p>
		<aside>ads</aside>
		<footer>copyright</footer>
	</body></html>`)

	text := extractVisibleText(doc, 15000)

	assert.Contains(t, text, "Misture a farinha com o açúcar.")
	assert.NotContains(t, text, "menu items")
	assert.NotContains(t, text, "site header")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "a comment")
	assert.NotContains(t, text, "ads")
	assert.NotContains(t, text, "copyright")
}

func TestExtractVisibleTextTruncates(t *testing.T) {
	long := strings.Repeat("palavra ", 100)
	doc := parsePage(t, "<html><body><p>"+long+"</p></body></html>")

	text := extractVisibleText(doc, 50)

	assert.LessOrEqual(t, len(text), 50)
	assert.True(t, strings.HasPrefix(text, "palavra"))
}
