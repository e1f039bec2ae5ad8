package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mentorhub/mentorhub-web/internal/middleware"
	"github.com/mentorhub/mentorhub-web/internal/models"
)

// NavItem is one entry of a dashboard's navigation chrome.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}

// NavDescriptor tells the client how to draw a dashboard: the sidebar
// items plus path patterns rendered without chrome, like the lesson
// viewer.
type NavDescriptor struct {
	Root       string    `json:"root"`
	Items      []NavItem `json:"items"`
	Chromeless []string  `json:"chromeless,omitempty"`
}

// navByRole is the fixed navigation table. Route patterns use gin
// parameter syntax so the client can match concrete paths against them.
var navByRole = map[models.Role]NavDescriptor{
	models.RoleStudent: {
		Root: models.PathStudentDashboard,
		Items: []NavItem{
			{Label: "Início", Path: "/dashboard", Icon: "home"},
			{Label: "Cursos", Path: "/dashboard/cursos", Icon: "book"},
			{Label: "Conversas", Path: "/dashboard/conversas", Icon: "chat"},
			{Label: "Perfil", Path: "/dashboard/perfil", Icon: "user"},
		},
		Chromeless: []string{"/dashboard/cursos/:courseId/aulas/:lessonId"},
	},
	models.RoleAdmin: {
		Root: models.PathAdminDashboard,
		Items: []NavItem{
			{Label: "Início", Path: "/admin", Icon: "home"},
			{Label: "Usuários", Path: "/admin/usuarios", Icon: "users"},
			{Label: "Sessões", Path: "/admin/sessoes", Icon: "calendar"},
			{Label: "Perfil", Path: "/admin/perfil", Icon: "user"},
		},
	},
	models.RoleMentor: {
		Root: models.PathMentorDashboard,
		Items: []NavItem{
			{Label: "Início", Path: "/mentor", Icon: "home"},
			{Label: "Sessões", Path: "/mentor/sessoes", Icon: "calendar"},
			{Label: "Conversas", Path: "/mentor/conversas", Icon: "chat"},
			{Label: "Perfil", Path: "/mentor/perfil", Icon: "user"},
		},
	},
}

// NavHandler serves the per-role navigation descriptors.
type NavHandler struct{}

// NewNavHandler creates a new NavHandler
func NewNavHandler() *NavHandler {
	return &NavHandler{}
}

// Descriptor handles GET <dashboard root>/nav for the caller's role.
func (h *NavHandler) Descriptor(c *gin.Context) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Not authenticated", err)
		return
	}

	nav, ok := navByRole[sess.Role]
	if !ok {
		respondError(c, http.StatusForbidden, "No navigation for this role", nil)
		return
	}

	c.JSON(http.StatusOK, nav)
}
