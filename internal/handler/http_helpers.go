package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	visitorCookieName   = "cs_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

func parsePositiveInt(value string, fallback int) int {
	num, err := strconv.Atoi(value)
	if err != nil || num <= 0 {
		return fallback
	}
	return num
}

// ensureVisitorID reads the visitor cookie, minting one on first contact.
func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		return id
	}

	visitorID := uuid.NewString()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Request.TLS != nil,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}

// redirectTarget rebuilds the request path around the canonical segment,
// preserving the trailing sub-path and the query string.
func redirectTarget(prefix, canonical, subPath, rawQuery string) string {
	target := "/" + prefix + "/" + canonical
	if subPath != "" {
		target += "/" + strings.Trim(subPath, "/")
	}
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return target
}
