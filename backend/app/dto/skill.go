package dto

type SkillItem struct {
	Skillname string `json:"skillname"`
	XP        int    `json:"xp"`
}

type SaveXPRequest struct {
	Skills []SkillItem `json:"skills"`
}

type SkillNameRequest struct {
	Skillname string `json:"skillname"`
}

type SkillResponse struct {
	Message string    `json:"message"`
	Skill   SkillItem `json:"skill"`
}

type SkillListResponse struct {
	Skills []SkillItem `json:"skills"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
