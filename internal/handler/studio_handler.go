package handler

import (
	"net/http"

	"github.com/StudioSpot/service-booking/internal/application"
	"github.com/StudioSpot/service-booking/internal/auth"
	userDomain "github.com/StudioSpot/service-booking/internal/domain/user"
	"github.com/StudioSpot/service-booking/internal/middleware"
	"github.com/StudioSpot/service-booking/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StudioHandler handles HTTP requests for studios, rooms and instrument
// catalogs.
type StudioHandler struct {
	service *application.StudioService
}

// NewStudioHandler creates a new StudioHandler.
func NewStudioHandler(service *application.StudioService) *StudioHandler {
	return &StudioHandler{service: service}
}

// RegisterRoutes registers studio and room routes. Browsing is public;
// mutations require an owner account.
func (h *StudioHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	ownerRole := middleware.RequireRole(string(userDomain.RoleOwner))

	studios := r.Group("/api/v1/studios")
	{
		studios.GET("", h.ListStudios)
		studios.GET("/:id", h.GetStudio)
		studios.POST("", authMW, ownerRole, h.CreateStudio)
		studios.POST("/:id/rooms", authMW, ownerRole, h.AddRoom)
	}

	rooms := r.Group("/api/v1/rooms")
	{
		rooms.GET("/:id", h.GetRoom)
		rooms.POST("/:id/instruments", authMW, ownerRole, h.AddInstrument)
	}
}

// ListStudios handles GET /api/v1/studios.
func (h *StudioHandler) ListStudios(c *gin.Context) {
	page, limit := parsePagination(c)
	city := c.Query("city")

	result, err := h.service.ListStudios(c.Request.Context(), city, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetStudio handles GET /api/v1/studios/:id.
func (h *StudioHandler) GetStudio(c *gin.Context) {
	studioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid studio ID")
		return
	}

	result, err := h.service.GetStudio(c.Request.Context(), studioID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetRoom handles GET /api/v1/rooms/:id.
func (h *StudioHandler) GetRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	result, err := h.service.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateStudio handles POST /api/v1/studios.
func (h *StudioHandler) CreateStudio(c *gin.Context) {
	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateStudio(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// AddRoom handles POST /api/v1/studios/:id/rooms.
func (h *StudioHandler) AddRoom(c *gin.Context) {
	studioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid studio ID")
		return
	}

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddRoom(c.Request.Context(), ownerID, studioID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// AddInstrument handles POST /api/v1/rooms/:id/instruments.
func (h *StudioHandler) AddInstrument(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid room ID")
		return
	}

	ownerID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddInstrument(c.Request.Context(), ownerID, roomID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
