package api

import (
	_ "embed"
	"net/http"
	"sync"

	"smartsheetsvc/internal"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

//go:embed landing.md
var landingMarkdown []byte

var (
	landingOnce sync.Once
	landingHTML []byte
)

func renderLanding() []byte {
	landingOnce.Do(func() {
		body := markdown.ToHTML(landingMarkdown, nil, nil)
		page := "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>aind-smartsheet-service</title></head><body>\n" +
			string(body) +
			"<p>Version " + internal.Version + "</p>\n</body></html>\n"
		landingHTML = []byte(page)
	})
	return landingHTML
}

func (s *Server) handleLanding(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", renderLanding())
}
