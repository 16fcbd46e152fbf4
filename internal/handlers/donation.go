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

type DonationHandler struct {
	donationService *services.DonationService
}

func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

type createDonationRequest struct {
	DonationType        string `json:"donation_type" form:"donation_type"`
	ItemDescription     string `json:"item_description" form:"item_description"`
	Quantity            int    `json:"quantity" form:"quantity"`
	Unit                string `json:"unit" form:"unit"`
	TargetArea          string `json:"target_area" form:"target_area"`
	SpecialInstructions string `json:"special_instructions" form:"special_instructions"`
}

// ListMyDonations returns the caller's donations, newest first
func (h *DonationHandler) ListMyDonations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	donations, total, err := h.donationService.ListMine(c.Request.Context(), middleware.GetIdentity(c), params)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(donations, dto.ToDonationDTO, params, total, takeFlashes(c)))
}

// ListAllDonations returns every donation with its donor, newest first
func (h *DonationHandler) ListAllDonations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	donations, total, err := h.donationService.ListAll(c.Request.Context(), middleware.GetIdentity(c), params)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(donations, dto.ToDonationDTO, params, total, takeFlashes(c)))
}

// CreateDonation records a pledged donation owned by the caller
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req createDonationRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	donation, err := h.donationService.Create(c.Request.Context(), middleware.GetIdentity(c), services.CreateDonationInput{
		DonationType:        models.DonationType(req.DonationType),
		ItemDescription:     req.ItemDescription,
		Quantity:            req.Quantity,
		Unit:                req.Unit,
		TargetArea:          req.TargetArea,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		respondServiceError(c, err, req)
		return
	}

	metrics.RecordCreated("donation")

	const message = "Thank you for your donation!"
	addFlash(c, flashSuccess, message)
	c.JSON(http.StatusCreated, gin.H{
		"message":  message,
		"donation": dto.ToDonationDTO(*donation),
	})
}

// GetDonation returns one donation with its donor
func (h *DonationHandler) GetDonation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	donation, err := h.donationService.Detail(c.Request.Context(), middleware.GetIdentity(c), id)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToDonationDTO(*donation))
}
