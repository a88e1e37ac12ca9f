package controllers

import (
	"net/http"

	"riseabove/backend/app/dto"
	"riseabove/backend/app/middleware"
	"riseabove/backend/app/services"
)

type SkillController struct{ Skills *services.SkillService }

func NewSkillController(skills *services.SkillService) *SkillController {
	return &SkillController{Skills: skills}
}

func (c *SkillController) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	skills, err := c.Skills.ListSkills(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := dto.SkillListResponse{Skills: make([]dto.SkillItem, 0, len(skills))}
	for _, s := range skills {
		resp.Skills = append(resp.Skills, dto.SkillItem{Skillname: s.Skillname, XP: s.XP})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (c *SkillController) SaveXP(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	var req dto.SaveXPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	updates := make([]services.XPUpdate, 0, len(req.Skills))
	for _, item := range req.Skills {
		updates = append(updates, services.XPUpdate{Skillname: item.Skillname, XP: item.XP})
	}
	if err := c.Skills.SaveXP(r.Context(), userID, updates); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "XP updated successfully"})
}

func (c *SkillController) AddSkill(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	var req dto.SkillNameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	skill, err := c.Skills.AddSkill(r.Context(), userID, req.Skillname)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SkillResponse{
		Message: "Skill added successfully",
		Skill:   dto.SkillItem{Skillname: skill.Skillname, XP: skill.XP},
	})
}

func (c *SkillController) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())
	var req dto.SkillNameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := c.Skills.DeleteSkill(r.Context(), userID, req.Skillname); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Skill deleted successfully"})
}
