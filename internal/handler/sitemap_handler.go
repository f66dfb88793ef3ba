package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sitemap serves /sitemap.xml by walking the upstream catalogs.
func (a *API) Sitemap(c *gin.Context) {
	body, err := a.sitemap.BuildXML(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.String(http.StatusServiceUnavailable, "sitemap unavailable")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
