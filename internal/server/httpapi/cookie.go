package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/qdrive/internal/common"
)

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	maxAge := h.opts.SessionValidity
	if maxAge <= 0 {
		maxAge = common.SessionValidity
	}
	http.SetCookie(w, &http.Cookie{
		Name:     common.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}
