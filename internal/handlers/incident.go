package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/disaster-relief-api/internal/dto"
	apierrors "github.com/yukikurage/disaster-relief-api/internal/errors"
	"github.com/yukikurage/disaster-relief-api/internal/metrics"
	"github.com/yukikurage/disaster-relief-api/internal/middleware"
	"github.com/yukikurage/disaster-relief-api/internal/models"
	"github.com/yukikurage/disaster-relief-api/internal/services"
	"github.com/yukikurage/disaster-relief-api/internal/utils"
)

type IncidentHandler struct {
	incidentService *services.IncidentService
}

func NewIncidentHandler(incidentService *services.IncidentService) *IncidentHandler {
	return &IncidentHandler{
		incidentService: incidentService,
	}
}

type createIncidentRequest struct {
	Title         string `json:"title" form:"title"`
	Description   string `json:"description" form:"description"`
	Location      string `json:"location" form:"location"`
	IncidentDate  string `json:"incident_date" form:"incident_date"`
	DisasterType  string `json:"disaster_type" form:"disaster_type"`
	AffectedAreas string `json:"affected_areas" form:"affected_areas"`
	UrgencyLevel  string `json:"urgency_level" form:"urgency_level"`
}

// ListIncidents returns every incident report, newest first
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	incidents, total, err := h.incidentService.ListAll(c.Request.Context(), middleware.GetIdentity(c), params)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(incidents, dto.ToIncidentDTO, params, total, takeFlashes(c)))
}

// CreateIncident files a new report owned by the caller
func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var req createIncidentRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	incident, err := h.incidentService.Create(c.Request.Context(), middleware.GetIdentity(c), services.CreateIncidentInput{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		IncidentDate:  req.IncidentDate,
		DisasterType:  models.DisasterType(req.DisasterType),
		AffectedAreas: req.AffectedAreas,
		UrgencyLevel:  models.UrgencyLevel(req.UrgencyLevel),
	})
	if err != nil {
		respondServiceError(c, err, req)
		return
	}

	metrics.RecordCreated("incident")

	const message = "Incident report submitted successfully!"
	addFlash(c, flashSuccess, message)
	c.JSON(http.StatusCreated, gin.H{
		"message":  message,
		"incident": dto.ToIncidentDTO(*incident),
	})
}

// GetIncident returns one report with its reporter
func (h *IncidentHandler) GetIncident(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	incident, err := h.incidentService.Detail(c.Request.Context(), middleware.GetIdentity(c), id)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToIncidentDTO(*incident))
}

