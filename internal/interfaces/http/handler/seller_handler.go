package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/shiraberu/pricing-go/internal/application/dto"
	"github.com/shiraberu/pricing-go/internal/application/service"
	"github.com/shiraberu/pricing-go/internal/domain/entity"
	"github.com/shiraberu/pricing-go/internal/domain/repository"
)

// SellerHandler exposes the seller/category collection over HTTP.
type SellerHandler struct {
	sellers *service.SellerService
	export  *service.ExportService
}

// NewSellerHandler creates a seller handler.
func NewSellerHandler(sellers *service.SellerService, export *service.ExportService) *SellerHandler {
	return &SellerHandler{sellers: sellers, export: export}
}

// Routes mounts the seller and category endpoints on a chi router.
func (h *SellerHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Post("/reorder", h.ReorderCategories)
		r.Put("/{id}", h.RenameCategory)
		r.Delete("/{id}", h.DeleteCategory)
	})

	r.Route("/sellers", func(r chi.Router) {
		r.Get("/", h.ListSellers)
		r.Post("/", h.SaveSeller)
		r.Get("/lookup", h.LookupSeller)
		r.Get("/last-category", h.LastCategory)
		r.Get("/{id}", h.GetSeller)
		r.Put("/{id}", h.UpdateSeller)
		r.Delete("/{id}", h.DeleteSeller)
		r.Delete("/{id}/categories/{categoryID}", h.RemoveSellerFromCategory)
	})

	r.Get("/stats", h.Stats)
	r.Get("/export", h.Export)
	r.Get("/export/csv", h.ExportCSV)
	r.Post("/import", h.Import)

	return r
}

// CreateCategory handles POST /categories.
func (h *SellerHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON body")
		return
	}

	category, err := h.sellers.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, dto.NewSuccessResponse(category))
}

// ListCategories handles GET /categories.
func (h *SellerHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.sellers.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(categories))
}

// RenameCategory handles PUT /categories/{id}.
func (h *SellerHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON body")
		return
	}

	category, err := h.sellers.RenameCategory(r.Context(), id, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(category))
}

// DeleteCategory handles DELETE /categories/{id}.
// Sellers linked to the category survive with the link removed.
func (h *SellerHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sellers.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// ReorderCategories handles POST /categories/reorder.
func (h *SellerHandler) ReorderCategories(w http.ResponseWriter, r *http.Request) {
	var req dto.ReorderCategoriesRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON body")
		return
	}

	if err := h.sellers.ReorderCategories(r.Context(), req.OrderedIDs); err != nil {
		respondError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// SaveSeller handles POST /sellers.
// Saving an already saved (platform, platform ID) pair merges into the
// existing record, so the endpoint is safe to call from a listing page
// without checking first.
func (h *SellerHandler) SaveSeller(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveSellerRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON body")
		return
	}

	seller, err := h.sellers.SaveSeller(r.Context(), req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, dto.NewSuccessResponse(seller))
}

// ListSellers handles GET /sellers?category=&type=&platform=.
func (h *SellerHandler) ListSellers(w http.ResponseWriter, r *http.Request) {
	var filter repository.SellerFilter

	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, r, "category must be a UUID")
			return
		}
		filter.CategoryID = &id
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		sellerType := entity.SellerType(raw)
		if !sellerType.IsValid() {
			badRequest(w, r, "unknown seller type")
			return
		}
		filter.Type = &sellerType
	}
	if raw := r.URL.Query().Get("platform"); raw != "" {
		platform := entity.Platform(raw)
		if !platform.IsValid() {
			badRequest(w, r, "unknown platform")
			return
		}
		filter.Platform = &platform
	}

	sellers, err := h.sellers.ListSellers(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(sellers))
}

// LookupSeller handles GET /sellers/lookup?platform=&platformId=.
// It answers "is this seller already saved" for marketplace pages.
func (h *SellerHandler) LookupSeller(w http.ResponseWriter, r *http.Request) {
	platform := entity.Platform(r.URL.Query().Get("platform"))
	platformID := r.URL.Query().Get("platformId")
	if !platform.IsValid() || platformID == "" {
		badRequest(w, r, "platform and platformId query parameters are required")
		return
	}

	seller, err := h.sellers.GetSellerByPlatformID(r.Context(), platform, platformID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(seller))
}

// GetSeller handles GET /sellers/{id}.
func (h *SellerHandler) GetSeller(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	seller, err := h.sellers.GetSeller(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(seller))
}

// UpdateSeller handles PUT /sellers/{id}.
func (h *SellerHandler) UpdateSeller(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req dto.UpdateSellerRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON body")
		return
	}

	seller, err := h.sellers.UpdateSeller(r.Context(), id, req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(seller))
}

// DeleteSeller handles DELETE /sellers/{id}.
func (h *SellerHandler) DeleteSeller(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.sellers.DeleteSeller(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// RemoveSellerFromCategory handles DELETE /sellers/{id}/categories/{categoryID}.
func (h *SellerHandler) RemoveSellerFromCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	categoryID, ok := pathUUID(w, r, "categoryID")
	if !ok {
		return
	}

	seller, err := h.sellers.RemoveSellerFromCategory(r.Context(), id, categoryID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(seller))
}

// LastCategory handles GET /sellers/last-category.
// The response data is null when no category has been used yet.
func (h *SellerHandler) LastCategory(w http.ResponseWriter, r *http.Request) {
	id, err := h.sellers.LastCategoryID(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	var data *uuid.UUID
	if id != uuid.Nil {
		data = &id
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(data))
}

// Stats handles GET /stats.
func (h *SellerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sellers.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, dto.NewSuccessResponse(stats))
}

// Export handles GET /export, returning the versioned JSON envelope.
func (h *SellerHandler) Export(w http.ResponseWriter, r *http.Request) {
	envelope, err := h.export.Export(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, envelope)
}

// ExportCSV handles GET /export/csv, returning a CSV attachment.
func (h *SellerHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	out, err := h.export.ExportCSV(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sellers.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// Import handles POST /import, replacing the collection with the posted
// envelope.
func (h *SellerHandler) Import(w http.ResponseWriter, r *http.Request) {
	var envelope dto.ExportEnvelope
	if err := render.DecodeJSON(r.Body, &envelope); err != nil {
		badRequest(w, r, "invalid JSON body")
		return
	}

	if err := h.export.Import(r.Context(), &envelope); err != nil {
		respondError(w, r, err)
		return
	}

	render.NoContent(w, r)
}

// pathUUID parses a UUID path parameter, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		badRequest(w, r, name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
