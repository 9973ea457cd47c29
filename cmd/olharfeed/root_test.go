package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pevans/olharfeed/newsfeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExecuteVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "olharfeed dev (none)")
}

func TestOpenerFor(t *testing.T) {
	for _, name := range []string{"chrome", "http"} {
		open, err := openerFor(name)
		require.NoError(t, err)
		assert.NotNil(t, open)
	}

	_, err := openerFor("firefox")
	assert.Error(t, err)
}

// TestLoadRunConfig_FlagOverrides verifies flags win over the config file
func TestLoadRunConfig_FlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_path: from-file.xml\nlogging:\n  level: warn\n"), 0o600))

	cfg, err := loadRunConfig(&runOptions{configPath: path, output: "from-flag.xml"})
	require.NoError(t, err)
	assert.Equal(t, "from-flag.xml", cfg.OutputPath)
	assert.Equal(t, "warn", cfg.Logging.Level)

	_, err = loadRunConfig(&runOptions{logLevel: "chatty"})
	assert.Error(t, err)
}

// TestRun_UnknownFetcher verifies the fetcher flag is checked before any
// work starts
func TestRun_UnknownFetcher(t *testing.T) {
	_, err := execute(t, "run", "--fetcher", "lynx", "--output", filepath.Join(t.TempDir(), "feed.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fetcher")
}

// TestRun_HTTPFetcherEndToEnd verifies a full run against a local site
// writes an ordered feed
func TestRun_HTTPFetcherEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/editorias/noticias/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><section class="p-block">
<a class="p-item" href="/old"><div class="p-img"><img src="/img/old.jpg"></div><div class="p-title"><h2>Old</h2></div><div class="p-description">Old summary</div></a>
<a class="p-item" href="/new"><div class="p-title"><h2>New</h2></div><div class="p-description">New summary</div></a>
<a class="p-item" href="/undated"><div class="p-title"><h2>Undated</h2></div><div class="p-description">No date</div></a>
</section></body></html>`)
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<span class="sng-data">Publicado em 01/01/2024 10h00</span>`)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<span class="sng-data">05/01/2024 08h00 por Redação</span>`)
	})
	mux.HandleFunc("/undated", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>sem data</p>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	output := filepath.Join(dir, "feed.xml")
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(fmt.Sprintf(`target_url: %s/editorias/noticias/
base_url: %s
logging:
  level: error
wait:
  timeout: 5s
  listing_settle: 0s
  article_settle: 0s
debug:
  page_error_path: %s
  page_path: %s
  screenshot_path: %s
`, server.URL, server.URL,
		filepath.Join(dir, "debug_page_error.html"),
		filepath.Join(dir, "debug_page.html"),
		filepath.Join(dir, "debug_screenshot.png"),
	)), 0o600))

	out, err := execute(t, "--config", configPath, "--fetcher", "http", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "with 3 articles")

	feed, err := newsfeed.ParseFile(output)
	require.NoError(t, err)
	require.Len(t, feed.Items, 3)
	assert.Equal(t, server.URL+"/new", feed.Items[0].Link)
	assert.Equal(t, server.URL+"/old", feed.Items[1].Link)
	assert.Equal(t, server.URL+"/undated", feed.Items[2].Link)

	require.Len(t, feed.Items[1].Enclosures, 1)
	assert.Equal(t, server.URL+"/img/old.jpg", feed.Items[1].Enclosures[0].URL)

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	require.NotNil(t, feed.Items[2].PublishedParsed)
	assert.True(t, time.Date(1970, 1, 1, 0, 0, 0, 0, loc).Equal(*feed.Items[2].PublishedParsed))
}

// TestVerify_PrintsEntries verifies the verify command lists a written feed
func TestVerify_PrintsEntries(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	records := []newsfeed.ArticleRecord{
		newsfeed.ArticleStub{
			Link:     "https://olhardigital.com.br/a",
			Title:    "Primeira notícia",
			Summary:  "Resumo",
			ImageURL: "https://olhardigital.com.br/img/a.jpg",
		}.WithPublishedAt(time.Date(2024, 5, 20, 14, 30, 0, 0, loc)),
	}
	doc := newsfeed.Assemble(records, newsfeed.Metadata{
		Title:    "Olhar Digital",
		Link:     "https://olhardigital.com.br",
		Language: "pt-BR",
	}, time.Now(), loc)

	path := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, newsfeed.WriteFile(doc, path))

	out, err := execute(t, "verify", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Olhar Digital (rss, language pt-BR)")
	assert.Contains(t, out, "1. 20/05/2024 14:30  Primeira notícia")
	assert.Contains(t, out, "https://olhardigital.com.br/a")
	assert.Contains(t, out, "image: https://olhardigital.com.br/img/a.jpg")
}

// TestVerify_EmptyFeed verifies an empty feed is reported, not rejected
func TestVerify_EmptyFeed(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	doc := newsfeed.Assemble(nil, newsfeed.Metadata{Title: "Olhar Digital", Link: "https://olhardigital.com.br"}, time.Now(), loc)
	path := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, newsfeed.WriteFile(doc, path))

	out, err := execute(t, "verify", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No entries.")
}

// TestVerify_MissingFile verifies a missing feed is an error
func TestVerify_MissingFile(t *testing.T) {
	_, err := execute(t, "verify", filepath.Join(t.TempDir(), "nope.xml"))
	assert.Error(t, err)
}
