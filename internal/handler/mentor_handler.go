package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/pkg/errcode"
	"github.com/personapath/personapath/internal/pkg/response"
	"github.com/personapath/personapath/internal/service"
)

type MentorHandler struct {
	mentors *service.MentorService
	profile *service.ProfileService
}

func NewMentorHandler(mentors *service.MentorService, profile *service.ProfileService) *MentorHandler {
	return &MentorHandler{mentors: mentors, profile: profile}
}

type mentorMatchRequest struct {
	Goals   model.SkillSet `json:"goals"`
	Domains []string       `json:"domains"`
}

func (h *MentorHandler) Match(c *gin.Context) {
	var req mentorMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	goals := req.Goals
	if len(goals) == 0 {
		stored, err := h.profile.GetSkills(c.Request.Context(), getUserID(c))
		if err != nil {
			handleError(c, err)
			return
		}
		goals = stored
	}
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	scores, err := h.mentors.Rank(c.Request.Context(), goals, req.Domains, limit)
	if err != nil {
		handleError(c, err)
		return
	}
	if scores == nil {
		scores = []model.MatchScore{}
	}
	response.Success(c, gin.H{"items": scores})
}
