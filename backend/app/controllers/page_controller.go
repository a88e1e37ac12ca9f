package controllers

import (
	"net/http"

	"riseabove/backend/app/middleware"
	"riseabove/backend/app/services"
	"riseabove/backend/app/view"
)

type PageController struct {
	Skills *services.SkillService
	View   *view.Renderer
}

func NewPageController(skills *services.SkillService, v *view.Renderer) *PageController {
	return &PageController{Skills: skills, View: v}
}

func (c *PageController) Home(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	skills, err := c.Skills.ListSkills(r.Context(), userID)
	if err != nil {
		internalError(w, r, err)
		return
	}
	renderPage(c.View, w, r, "home", "Home", skills)
}

func (c *PageController) Calendar(w http.ResponseWriter, r *http.Request) {
	renderPage(c.View, w, r, "calendar", "Calendar", nil)
}
