package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/shiraberu/pricing-go/internal/application/dto"
	"github.com/shiraberu/pricing-go/internal/application/service"
	"github.com/shiraberu/pricing-go/internal/domain/pricing"
)

// PricingHandler exposes the price calculation engine over HTTP.
type PricingHandler struct {
	pricing *service.PricingService
}

// NewPricingHandler creates a pricing handler.
func NewPricingHandler(pricing *service.PricingService) *PricingHandler {
	return &PricingHandler{pricing: pricing}
}

// Routes mounts the pricing endpoints on a chi router.
func (h *PricingHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/max-purchase", h.MaxPurchase)
	r.Post("/selling-price", h.SellingPrice)
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)
	r.Get("/shipping-rate", h.ShippingRate)
	return r
}

// MaxPurchase handles POST /pricing/max-purchase.
// It computes the maximum sourcing cost for an eBay price.
func (h *PricingHandler) MaxPurchase(w http.ResponseWriter, r *http.Request) {
	var req dto.MaxPurchaseRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON body")
		return
	}

	result, err := h.pricing.MaxPurchasePrice(req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(result))
}

// SellingPrice handles POST /pricing/selling-price.
// It computes the eBay price required to hit the target profit for a
// Mercari cost.
func (h *PricingHandler) SellingPrice(w http.ResponseWriter, r *http.Request) {
	var req dto.SellingPriceRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON body")
		return
	}

	result, err := h.pricing.RequiredSellingPrice(req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(result))
}

// GetSettings handles GET /pricing/settings.
func (h *PricingHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(h.pricing.Settings()))
}

// UpdateSettings handles PUT /pricing/settings.
// The body is a partial settings patch; absent fields keep their value.
func (h *PricingHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var overrides pricing.Overrides
	if err := render.DecodeJSON(r.Body, &overrides); err != nil {
		badRequest(w, r, "invalid JSON body")
		return
	}

	updated, err := h.pricing.UpdateSettings(overrides)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(updated))
}

// ShippingRate handles GET /pricing/shipping-rate?carrier=CF&weight=1200.
// An omitted weight uses the configured package weight.
func (h *PricingHandler) ShippingRate(w http.ResponseWriter, r *http.Request) {
	carrier := pricing.Carrier(r.URL.Query().Get("carrier"))
	if carrier == "" {
		badRequest(w, r, "carrier query parameter is required")
		return
	}

	weight := 0
	if raw := r.URL.Query().Get("weight"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			badRequest(w, r, "weight must be a non-negative integer")
			return
		}
		weight = parsed
	}

	result, err := h.pricing.ShippingRate(carrier, weight)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(result))
}
