package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/collegescope/internal/model"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const shortlistSessionKey = "shortlist"

// shortlistIDs reads the saved college ids from the session. They are
// stored as a comma-joined string so the cookie codec stays trivial.
func shortlistIDs(session sessions.Session) []uint {
	raw, _ := session.Get(shortlistSessionKey).(string)
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

func storeShortlist(session sessions.Session, ids []uint) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	session.Set(shortlistSessionKey, strings.Join(parts, ","))
}

// ToggleShortlist adds or removes a college from the session shortlist and
// reports the new membership as JSON for the inline widget.
func (a *API) ToggleShortlist(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid college id"})
		return
	}

	session := sessions.Default(c)
	ids := shortlistIDs(session)

	shortlisted := false
	next := make([]uint, 0, len(ids)+1)
	for _, existing := range ids {
		if existing == uint(id) {
			continue
		}
		next = append(next, existing)
	}
	if len(next) == len(ids) {
		next = append(next, uint(id))
		shortlisted = true
	}

	storeShortlist(session, next)
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save shortlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shortlisted": shortlisted, "count": len(next)})
}

// ShowShortlist renders the saved colleges. Ids that no longer resolve
// upstream are dropped without comment.
func (a *API) ShowShortlist(c *gin.Context) {
	session := sessions.Default(c)
	ids := shortlistIDs(session)

	colleges := make([]model.College, 0, len(ids))
	for _, id := range ids {
		college, err := a.upstream.CollegeByID(c.Request.Context(), id)
		if err != nil {
			continue
		}
		colleges = append(colleges, *college)
	}

	a.renderHTML(c, http.StatusOK, "shortlist.html", gin.H{
		"title":    "Your shortlist",
		"colleges": cardViews(colleges),
	})
}
