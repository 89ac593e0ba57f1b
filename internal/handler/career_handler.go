package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/pkg/errcode"
	"github.com/personapath/personapath/internal/pkg/response"
	"github.com/personapath/personapath/internal/service"
)

type CareerHandler struct {
	answers   *service.AnswerService
	retrieval *service.RetrievalService
	skillGap  *service.SkillGapService
	career    *service.CareerService
	profile   *service.ProfileService
}

func NewCareerHandler(
	answers *service.AnswerService,
	retrieval *service.RetrievalService,
	skillGap *service.SkillGapService,
	career *service.CareerService,
	profile *service.ProfileService,
) *CareerHandler {
	return &CareerHandler{
		answers:   answers,
		retrieval: retrieval,
		skillGap:  skillGap,
		career:    career,
		profile:   profile,
	}
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *CareerHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	answer, err := h.answers.Answer(c.Request.Context(), getUserID(c), req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, answer)
}

func (h *CareerHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "query required")
		return
	}
	results, err := h.retrieval.Retrieve(c.Request.Context(), query, h.retrieval.DefaultTopK(), h.retrieval.DefaultMinScore())
	if err != nil {
		handleError(c, err)
		return
	}
	if results == nil {
		results = []model.RetrievalResult{}
	}
	response.Success(c, gin.H{"items": results})
}

func (h *CareerHandler) SimilarRoles(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "query required")
		return
	}
	results, err := h.retrieval.SimilarRoles(c.Request.Context(), query, h.retrieval.DefaultTopK())
	if err != nil {
		handleError(c, err)
		return
	}
	if results == nil {
		results = []model.RetrievalResult{}
	}
	response.Success(c, gin.H{"items": results})
}

type skillGapRequest struct {
	RoleID string         `json:"role_id"`
	Skills model.SkillSet `json:"skills"`
}

// SkillGap analyzes the submitted skills, or the stored profile
// skills when the request carries none.
func (h *CareerHandler) SkillGap(c *gin.Context) {
	var req skillGapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.RoleID == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "role_id required")
		return
	}
	skills := req.Skills
	if len(skills) == 0 {
		stored, err := h.profile.GetSkills(c.Request.Context(), getUserID(c))
		if err != nil {
			handleError(c, err)
			return
		}
		skills = stored
	}
	report, err := h.skillGap.Analyze(c.Request.Context(), skills, req.RoleID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, report)
}

type roadmapRequest struct {
	CurrentRole string `json:"current_role"`
	TargetRole  string `json:"target_role"`
}

func (h *CareerHandler) Roadmap(c *gin.Context) {
	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.CurrentRole == "" || req.TargetRole == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "current_role and target_role required")
		return
	}
	roadmap, err := h.career.Roadmap(c.Request.Context(), req.CurrentRole, req.TargetRole)
	if err != nil {
		handleError(c, err)
		return
	}
	skills, err := h.career.SkillsAlongPath(c.Request.Context(), roadmap.Path)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"roadmap": roadmap, "skills_by_role": skills})
}
