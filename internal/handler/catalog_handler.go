package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/personapath/personapath/internal/middleware"
	"github.com/personapath/personapath/internal/model"
	"github.com/personapath/personapath/internal/pkg/errcode"
	"github.com/personapath/personapath/internal/pkg/response"
	"github.com/personapath/personapath/internal/repo"
)

// CatalogHandler maintains the role and mentor catalogs the matching
// services read from. Writes require the admin role.
type CatalogHandler struct {
	roles   *repo.RoleRepo
	mentors *repo.MentorRepo
}

func NewCatalogHandler(roles *repo.RoleRepo, mentors *repo.MentorRepo) *CatalogHandler {
	return &CatalogHandler{roles: roles, mentors: mentors}
}

func requireAdmin(c *gin.Context) bool {
	if c.GetString(middleware.ContextUserRoleKey) != "admin" {
		response.Error(c, http.StatusForbidden, errcode.ErrForbidden, "admin role required")
		c.Abort()
		return false
	}
	return true
}

func (h *CatalogHandler) ListRoles(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if roles == nil {
		roles = []model.RoleRequirement{}
	}
	response.Success(c, gin.H{"items": roles})
}

func (h *CatalogHandler) GetRole(c *gin.Context) {
	role, err := h.roles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, role)
}

func (h *CatalogHandler) SaveRole(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var role model.RoleRequirement
	if err := c.ShouldBindJSON(&role); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if role.RoleID == "" || role.Title == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "role_id and title required")
		return
	}
	if err := h.roles.Save(c.Request.Context(), &role); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, role)
}

func (h *CatalogHandler) ListMentors(c *gin.Context) {
	mentors, err := h.mentors.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if mentors == nil {
		mentors = []model.MentorProfile{}
	}
	response.Success(c, gin.H{"items": mentors})
}

func (h *CatalogHandler) SaveMentor(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}
	var mentor model.MentorProfile
	if err := c.ShouldBindJSON(&mentor); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if mentor.MentorID == "" || mentor.Name == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "mentor_id and name required")
		return
	}
	if err := h.mentors.Save(c.Request.Context(), &mentor); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, mentor)
}
