package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/disaster-relief-api/internal/dto"
	apierrors "github.com/yukikurage/disaster-relief-api/internal/errors"
	"github.com/yukikurage/disaster-relief-api/internal/metrics"
	"github.com/yukikurage/disaster-relief-api/internal/middleware"
	"github.com/yukikurage/disaster-relief-api/internal/services"
	"github.com/yukikurage/disaster-relief-api/internal/utils"
)

// MyRegistrationPath is where a repeated registration is redirected.
const MyRegistrationPath = "/api/volunteers/me"

type VolunteerHandler struct {
	volunteerService *services.VolunteerService
}

func NewVolunteerHandler(volunteerService *services.VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{
		volunteerService: volunteerService,
	}
}

type registerVolunteerRequest struct {
	Skills            string `json:"skills" form:"skills"`
	Availability      string `json:"availability" form:"availability"`
	HasTransportation bool   `json:"has_transportation" form:"has_transportation"`
	PreferredLocation string `json:"preferred_location" form:"preferred_location"`
	EmergencyContact  string `json:"emergency_contact" form:"emergency_contact"`
}

// ListMyVolunteering returns the caller's active registrations
func (h *VolunteerHandler) ListMyVolunteering(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	volunteers, total, err := h.volunteerService.ListMine(c.Request.Context(), middleware.GetIdentity(c), params)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(volunteers, dto.ToVolunteerDTO, params, total, takeFlashes(c)))
}

// ListActiveVolunteers returns every active volunteer with their user
func (h *VolunteerHandler) ListActiveVolunteers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	volunteers, total, err := h.volunteerService.ListActive(c.Request.Context(), middleware.GetIdentity(c), params)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(volunteers, dto.ToVolunteerDTO, params, total, takeFlashes(c)))
}

// RegisterVolunteer signs the caller up. A second attempt is redirected to the
// existing registration with an error flash.
func (h *VolunteerHandler) RegisterVolunteer(c *gin.Context) {
	var req registerVolunteerRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	volunteer, err := h.volunteerService.Register(c.Request.Context(), middleware.GetIdentity(c), services.RegisterVolunteerInput{
		Skills:            req.Skills,
		Availability:      req.Availability,
		HasTransportation: req.HasTransportation,
		PreferredLocation: req.PreferredLocation,
		EmergencyContact:  req.EmergencyContact,
	})
	if errors.Is(err, services.ErrAlreadyRegistered) {
		addFlash(c, flashError, "You are already registered as a volunteer.")
		c.Redirect(http.StatusSeeOther, MyRegistrationPath)
		return
	}
	if err != nil {
		respondServiceError(c, err, req)
		return
	}

	metrics.RecordCreated("volunteer")

	const message = "Thank you for registering as a volunteer!"
	addFlash(c, flashSuccess, message)
	c.JSON(http.StatusCreated, gin.H{
		"message":   message,
		"volunteer": dto.ToVolunteerDTO(*volunteer),
	})
}

// GetMyRegistration returns the caller's registration regardless of status
func (h *VolunteerHandler) GetMyRegistration(c *gin.Context) {
	volunteer, err := h.volunteerService.MyRegistration(c.Request.Context(), middleware.GetIdentity(c))
	if errors.Is(err, services.ErrNotFound) {
		apierrors.NotFound(c, "You have not registered as a volunteer yet.")
		return
	}
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"volunteer": dto.ToVolunteerDTO(*volunteer),
		"messages":  takeFlashes(c),
	})
}

// GetVolunteer returns one registration with its user
func (h *VolunteerHandler) GetVolunteer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	volunteer, err := h.volunteerService.Detail(c.Request.Context(), middleware.GetIdentity(c), id)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToVolunteerDTO(*volunteer))
}
