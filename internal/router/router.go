package router

import (
	"html/template"

	"github.com/collegescope/internal/config"
	"github.com/collegescope/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the gin engine, templates, and all public routes.
func SetupRouter(api *handler.API, cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("collegescope_session", store))

	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})
	r.LoadHTMLGlob(cfg.TemplateGlob)

	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/", api.ShowHome)
	r.GET("/sitemap.xml", api.Sitemap)

	r.GET("/colleges", api.ShowCollegeList)
	r.GET("/colleges/more", api.LoadMoreColleges)
	r.GET("/colleges/:segment", api.ShowCollegeDetail)
	r.GET("/colleges/:segment/:section", api.ShowCollegeSection)

	r.GET("/exams", api.ShowExamList)
	r.GET("/exams/more", api.LoadMoreExams)
	r.GET("/exams/:segment", api.ShowExamDetail)
	r.GET("/exams/:segment/:section", api.ShowExamSection)

	r.GET("/articles", api.ShowArticleList)
	r.GET("/articles/more", api.LoadMoreArticles)
	r.GET("/articles/:segment", api.ShowArticleDetail)

	r.GET("/news", api.ShowNewsList)
	r.GET("/news/more", api.LoadMoreNews)
	r.GET("/news/:segment", api.ShowNewsDetail)

	r.GET("/shortlist", api.ShowShortlist)
	r.POST("/shortlist/:id", api.ToggleShortlist)

	r.NoRoute(api.NotFound)

	return r
}
