package discovery

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/pevans/olharfeed/config"
	"github.com/stretchr/testify/require"
)

const (
	listingURL = "https://olhardigital.com.br/editorias/noticias/"
	articleA   = "https://olhardigital.com.br/2024/01/01/noticia-a/"
	articleB   = "https://olhardigital.com.br/2024/01/02/noticia-b/"
	articleC   = "https://olhardigital.com.br/2024/01/05/noticia-c/"
)

const listingPage = `<!DOCTYPE html>
<html><body>
<header><a class="p-item" href="/fora-do-container"><div class="p-title"><h2>Fora</h2></div><div class="p-description">x</div></a></header>
<section class="p-block">
  <a class="p-item" href="/2024/01/01/noticia-a/">
    <div class="p-img"><img data-lazy-src="/wp-content/uploads/a.jpg" src="data:image/gif;base64,R0lGODlhAQABAAAAACw="></div>
    <div class="p-title"><h2>  Notícia   A </h2></div>
    <div class="p-description">
      Resumo da notícia A
    </div>
  </a>
  <a class="p-item" href="https://olhardigital.com.br/2024/01/02/noticia-b/">
    <div class="p-img"><img src="https://img.olhardigital.com.br/b.png"></div>
    <div class="p-title"><h2>Notícia B</h2></div>
    <div class="p-description">Resumo da notícia B</div>
  </a>
  <a class="p-item" href="/2024/01/05/noticia-c/">
    <div class="p-title"><h2>Notícia C</h2></div>
    <div class="p-description">Resumo da notícia C</div>
  </a>
  <a class="p-item" href="/sem-resumo/"><div class="p-title"><h2>Sem resumo</h2></div></a>
  <a class="p-item"><div class="p-title"><h2>Sem link</h2></div><div class="p-description">x</div></a>
  <a class="p-item" href="/sem-titulo/"><div class="p-description">x</div></a>
  <a class="p-item" href="/titulo-vazio/"><div class="p-title"><h2>   </h2></div><div class="p-description">x</div></a>
</section>
</body></html>`

const emptyListingPage = `<html><body><section class="p-block"><p>Acesso bloqueado</p></section></body></html>`

const noContainerPage = `<html><body><h1>Just a moment...</h1></body></html>`

func articlePage(dateText string) string {
	return `<html><body><article><h1>Título</h1><span class="sng-data">` + dateText + `</span><p>Texto</p></article></body></html>`
}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

// testConfig returns the default configuration with every output file
// redirected into a temp dir.
func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.OutputPath = filepath.Join(dir, "feed_olhardigital.xml")
	cfg.Debug = config.DebugConfig{
		PageErrorPath:  filepath.Join(dir, "debug_page_error.html"),
		PagePath:       filepath.Join(dir, "debug_page.html"),
		ScreenshotPath: filepath.Join(dir, "debug_screenshot.png"),
	}
	return cfg
}

// happyPages serves the listing and three articles: A and C with dates, B
// without a recognizable date.
func happyPages() map[string]fakePage {
	return map[string]fakePage{
		listingURL: {html: listingPage},
		articleA:   {html: articlePage("Publicado em 01/01/2024 10h00 por Redação")},
		articleB:   {html: articlePage("Atualizado há poucos minutos")},
		articleC:   {html: articlePage("05/01/2024 08h00")},
	}
}
