package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"pet-rental/internal/dto/request"
	"pet-rental/internal/usecase"
	"pet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PetHandler struct {
	service usecase.PetService
	log     *zap.Logger
}

func NewPetHandler(service usecase.PetService, log *zap.Logger) *PetHandler {
	return &PetHandler{
		service: service,
		log:     log.With(zap.String("handler", "pet")),
	}
}

// CreatePet handles POST /api/pets (protected)
func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pet, err := h.service.CreatePet(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create pet")
		return
	}

	utils.ResponseCreated(w, "success", pet)
}

// GetPet handles GET /api/pets/{id} (public)
func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	pet, err := h.service.GetPet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get pet")
		return
	}

	utils.ResponseSuccess(w, "success", pet)
}

// GetMyPets handles GET /api/user/pets (protected)
func (h *PetHandler) GetMyPets(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	pets, err := h.service.GetMyPets(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get my pets")
		return
	}

	utils.ResponseSuccess(w, "success", pets)
}

// SearchPets handles GET /api/pets (public)
func (h *PetHandler) SearchPets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.SearchPetRequest{
		Species: query.Get("species"),
		City:    query.Get("city"),
	}
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	if raw := query.Get("price_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			req.PriceMin = &v
		}
	}
	if raw := query.Get("price_max"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			req.PriceMax = &v
		}
	}

	pets, err := h.service.SearchPets(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "search pets")
		return
	}

	utils.ResponseSuccess(w, "success", pets)
}

// UpdatePet handles PUT /api/pets/{id} (protected)
func (h *PetHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pet, err := h.service.UpdatePet(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update pet")
		return
	}

	utils.ResponseSuccess(w, "success", pet)
}

// DeletePet handles DELETE /api/pets/{id} (protected)
func (h *PetHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeletePet(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete pet")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
