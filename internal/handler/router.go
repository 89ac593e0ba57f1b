package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/personapath/personapath/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Career    *CareerHandler
	Mentors   *MentorHandler
	Documents *DocumentHandler
	Profile   *ProfileHandler
	Catalog   *CatalogHandler
	JWTSecret []byte
	// AIRateWindow throttles the endpoints that call out to the model
	// provider. Zero disables throttling.
	AIRateWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	aiGroup := authGroup.Group("")
	if deps.AIRateWindow > 0 {
		aiGroup.Use(middleware.RateLimit(deps.AIRateWindow))
	}
	aiGroup.POST("/career/ask", deps.Career.Ask)
	aiGroup.GET("/career/search", deps.Career.Search)
	aiGroup.GET("/career/similar-roles", deps.Career.SimilarRoles)
	aiGroup.POST("/documents", deps.Documents.Ingest)

	authGroup.POST("/career/skill-gap", deps.Career.SkillGap)
	authGroup.POST("/career/roadmap", deps.Career.Roadmap)
	authGroup.POST("/mentors/match", deps.Mentors.Match)

	authGroup.GET("/profile/skills", deps.Profile.GetSkills)
	authGroup.PUT("/profile/skills", deps.Profile.UpdateSkills)

	authGroup.GET("/roles", deps.Catalog.ListRoles)
	authGroup.GET("/roles/:id", deps.Catalog.GetRole)
	authGroup.PUT("/roles", deps.Catalog.SaveRole)
	authGroup.GET("/mentors", deps.Catalog.ListMentors)
	authGroup.PUT("/mentors", deps.Catalog.SaveMentor)

	authGroup.DELETE("/documents/:id", deps.Documents.Remove)
}
