package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/pkg/errcode"
	"github.com/personapath/personapath/internal/pkg/response"
	"github.com/personapath/personapath/internal/service"
)

type ProfileHandler struct {
	profile *service.ProfileService
}

func NewProfileHandler(profile *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

type updateSkillsRequest struct {
	Skills model.SkillSet `json:"skills"`
}

func (h *ProfileHandler) UpdateSkills(c *gin.Context) {
	var req updateSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	normalized, err := h.profile.UpdateSkills(c.Request.Context(), getUserID(c), req.Skills)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"skills": normalized})
}

func (h *ProfileHandler) GetSkills(c *gin.Context) {
	skills, err := h.profile.GetSkills(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	if skills == nil {
		skills = model.SkillSet{}
	}
	response.Success(c, gin.H{"skills": skills})
}
