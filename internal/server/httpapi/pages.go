package httpapi

import (
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// pageRoutes are the navigable pages. Only the first four are public.
var pageRoutes = []string{
	"/",
	"/login",
	"/register",
	"/registration-success",
	"/passenger/dashboard",
	"/driver/dashboard",
	"/driver/subscription",
}

func (h *Handler) registerPages(r *gin.Engine) {
	for _, p := range pageRoutes {
		r.GET(p, h.page(p))
	}

	if h.opts.WebRoot == "" {
		return
	}
	r.Static("/static", filepath.Join(h.opts.WebRoot, "static"))
	for _, name := range []string{"favicon.ico", "robots.txt"} {
		if fileExists(filepath.Join(h.opts.WebRoot, name)) {
			r.StaticFile("/"+name, filepath.Join(h.opts.WebRoot, name))
		}
	}
}

// page serves <web_root>/<route>.html, or a placeholder when there is none.
func (h *Handler) page(route string) gin.HandlerFunc {
	name := strings.TrimPrefix(route, "/")
	if name == "" {
		name = "index"
	}
	return func(c *gin.Context) {
		if h.opts.WebRoot != "" {
			file := filepath.Join(h.opts.WebRoot, filepath.FromSlash(name)+".html")
			if fileExists(file) {
				c.File(file)
				return
			}
		}
		body := fmt.Sprintf("<!doctype html><html><head><title>QDrive</title></head><body><h1>QDrive</h1><p>%s</p></body></html>",
			html.EscapeString(route))
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
	}
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
