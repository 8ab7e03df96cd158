package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"codeberg.org/codeexplainer/server/internal/explainer"
	appsessions "codeberg.org/codeexplainer/server/internal/sessions"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

//go:embed templates/*.html
var templateFS embed.FS

// Dependencies wires the page and API routes.
type Dependencies struct {
	Explainer   *explainer.Explainer
	Sessions    *appsessions.Manager
	CookieStore sessions.Store
	Language    string
	CORSOrigins []string

	// render results as markdown instead of plain text
	Markdown bool

	// applied to every route that triggers a backend call; may be nil
	ActionLimit gin.HandlerFunc

	// applied to the form action route only; may be nil
	FormGuard gin.HandlerFunc
}

// parses the embedded page templates
func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"lineNo": func(n int) string {
			if n == 0 {
				return ""
			}
			return strconv.Itoa(n)
		},
	}

	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// registers the page, form and JSON API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) error {
	tmpl, err := LoadTemplates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	h := NewHandlers(deps.Explainer, deps.Language, deps.Markdown)
	withSession := SessionMiddleware(deps.CookieStore, deps.Sessions)

	router.GET("/", withSession, h.Page)
	router.POST("/actions/:action", chain(deps.FormGuard, deps.ActionLimit, withSession, h.SubmitForm)...)

	v1 := router.Group("/api/v1")
	if len(deps.CORSOrigins) > 0 {
		v1.Use(CORSMiddleware(deps.CORSOrigins))

		// group middleware only runs for matched routes, so preflights need one
		v1.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
	}

	{
		v1.GET("/session", withSession, h.GetSession)
		v1.PUT("/session", withSession, h.UpdateInputs)
		v1.POST("/session/actions", chain(deps.ActionLimit, withSession, h.RunAction)...)
		v1.GET("/session/ws", withSession, h.StateStream(newUpgrader(deps.CORSOrigins)))
	}

	return nil
}

// drops the optional middleware that was not configured
func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
