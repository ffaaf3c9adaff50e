package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "simple", doc: "<html><head><title>Merhaba Dünya</title></head></html>", want: "Merhaba Dünya"},
		{name: "entities and whitespace", doc: "<TITLE lang=\"tr\">\n  Ali &amp; Veli  \n</TITLE>", want: "Ali & Veli"},
		{name: "first match wins", doc: "<title>Birinci</title><svg><title>İkinci</title></svg>", want: "Birinci"},
		{name: "missing", doc: "<html><body>no title</body></html>", want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, extractTitle(tt.doc))
		})
	}
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "name before content", doc: `<meta name="description" content="Kısa açıklama">`, want: "Kısa açıklama"},
		{name: "content before name", doc: `<meta content="Ters sıra" name="description">`, want: "Ters sıra"},
		{name: "apostrophe inside double quotes", doc: `<meta name="description" content="Ankara'nın en iyi rehberi">`, want: "Ankara'nın en iyi rehberi"},
		{name: "single quotes", doc: `<meta name='description' content='Tek tırnak'>`, want: "Tek tırnak"},
		{name: "other meta ignored", doc: `<meta name="keywords" content="a,b">`, want: ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, extractDescription(tt.doc))
		})
	}
}

func TestStripNonContent(t *testing.T) {
	doc := `<p>keep</p><script type="text/javascript">var secret = 1;</script>` +
		`<style>.x{color:red}</style><noscript>enable js</noscript>` +
		`<!-- hidden comment --><svg viewBox="0 0 1 1"><path d="M0"/></svg><p>also keep</p>`

	got := stripNonContent(doc)

	require.Contains(t, got, "keep")
	require.Contains(t, got, "also keep")
	for _, leaked := range []string{"secret", "color:red", "enable js", "hidden comment", "M0"} {
		require.NotContains(t, got, leaked)
	}
}

func TestStripNonContentUnclosed(t *testing.T) {
	require.Equal(t, "<p>before</p> ", stripNonContent("<p>before</p><script>never closed"))
	require.Equal(t, "<p>before</p> ", stripNonContent("<p>before</p><!-- never closed"))
}

func TestStripBoilerplate(t *testing.T) {
	doc := `<header>Site Başlığı</header><nav><a href="/">Ana Sayfa</a></nav>` +
		`<article>Makale gövdesi</article><aside>Reklam</aside><footer>© 2024</footer>`

	got := stripBoilerplate(doc)

	require.Contains(t, got, "Makale gövdesi")
	for _, leaked := range []string{"Site Başlığı", "Ana Sayfa", "Reklam", "© 2024"} {
		require.NotContains(t, got, leaked)
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags(`<h1>Başlık</h1><p>Bir&nbsp;iki &quot;üç&quot;</p><br/><span>dört</span>`)

	require.NotContains(t, got, "<")
	require.Contains(t, got, "Başlık\n")
	require.Contains(t, got, `"üç"`)
	require.Contains(t, got, "dört")
}

func TestCollapseWhitespace(t *testing.T) {
	in := "  birinci   satır \t\n\n\n\n   ikinci  satır  \r\n\n\n üçüncü  "
	require.Equal(t, "birinci satır\n\nikinci satır\n\nüçüncü", collapseWhitespace(in))
}

func TestCleanTextOrder(t *testing.T) {
	doc := `<html><head><title>T</title><script>alert("x")</script></head>` +
		`<body><nav><script>navScript()</script>Menü</nav>` +
		`<main><h2>Alt başlık</h2><p>Asıl   içerik &amp; metin.</p></main></body></html>`

	got := cleanText(doc)

	require.NotContains(t, got, "alert")
	require.NotContains(t, got, "navScript")
	require.NotContains(t, got, "Menü")
	require.NotContains(t, got, "<")
	require.True(t, strings.HasSuffix(got, "Alt başlık\nAsıl içerik & metin."), got)
}
