package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavymachinery/backend/services"
)

// OfferController handles the promotional offers routes.
type OfferController struct {
	catalogService *services.CatalogService
}

func NewOfferController(catalogService *services.CatalogService) *OfferController {
	return &OfferController{catalogService: catalogService}
}

// ListOffers handles GET /offers; the payload comes straight from the
// cache, so it is written as raw JSON.
func (oc *OfferController) ListOffers(ctx *gin.Context) {
	payload, svcErr := oc.catalogService.Offers(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.Data(http.StatusOK, "application/json", payload)
}

// AddOffer handles POST /offers (admin only).
func (oc *OfferController) AddOffer(ctx *gin.Context) {
	var req services.AddOfferRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	offer, svcErr := oc.catalogService.AddOffer(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"offer": offer})
}
