package adaptor

import (
	"encoding/json"
	"net/http"

	"pet-rental/internal/dto/request"
	"pet-rental/internal/usecase"
	"pet-rental/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// CreateReview handles POST /api/reviews (protected)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.CreateReview(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// ListPetReviews handles GET /api/pets/{id}/reviews (public)
func (h *ReviewHandler) ListPetReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := utils.ParseInt(query.Get("page"), 1)
	perPage := utils.ParseInt(query.Get("per_page"), 10)

	reviews, err := h.service.ListPetReviews(r.Context(), chi.URLParam(r, "id"), page, perPage)
	if err != nil {
		handleServiceError(w, h.log, err, "list pet reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetPetReviewStats handles GET /api/pets/{id}/reviews/stats (public)
func (h *ReviewHandler) GetPetReviewStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetPetReviewStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get pet review stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
