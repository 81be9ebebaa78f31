package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"roamly/internal/specialfares/repository"
	"roamly/internal/specialfares/service"
	apperrors "roamly/pkg/errors"
	httputil "roamly/pkg/http"
	"roamly/pkg/logger"
	"roamly/pkg/model"
)

// The special-fares endpoints predate the packages ones and the dashboard
// expects their success-flag envelope, so the two domains respond in
// different shapes on purpose.
type listResponse struct {
	Success bool                 `json:"success"`
	Data    []*model.SpecialFare `json:"data"`
}

type mutationResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Data    *model.SpecialFare `json:"data,omitempty"`
}

type SpecialFareHandler struct {
	service service.SpecialFareService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewSpecialFareHandler(
	service service.SpecialFareService,
	auth func(httprouter.Handle) httprouter.Handle,
	log *logger.Logger,
) *SpecialFareHandler {
	return &SpecialFareHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

// ListPublic serves the public site: only active fares.
func (h *SpecialFareHandler) ListPublic(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := parseListFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, "ListPublic", err)
		return
	}
	active := true
	filter.IsActive = &active

	h.list(w, r, "ListPublic", filter)
}

// List serves the admin dashboard without implicit filters, so deactivated
// fares stay visible for review.
func (h *SpecialFareHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := parseListFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	h.list(w, r, "List", filter)
}

func (h *SpecialFareHandler) list(w http.ResponseWriter, r *http.Request, op string, filter repository.ListFilter) {
	fares, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, op, err)
		return
	}

	if err := httputil.WriteSuccess(w, listResponse{Success: true, Data: fares}); err != nil {
		h.log.Error("failed to write response", "handler", op, "error", err)
	}
}

func (h *SpecialFareHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fare := model.SpecialFare{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&fare); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &fare); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, mutationResponse{
		Success: true,
		Message: "Special fare created successfully",
		Data:    &fare,
	}); err != nil {
		h.log.Error("failed to write response", "handler", "Create", "error", err)
	}
}

func (h *SpecialFareHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, "Update", apperrors.InvalidInput("id query parameter is required"))
		return
	}

	var updates model.SpecialFareUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), id, &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, mutationResponse{
		Success: true,
		Message: "Special fare updated successfully",
		Data:    updated,
	}); err != nil {
		h.log.Error("failed to write response", "handler", "Update", "error", err)
	}
}

func (h *SpecialFareHandler) Delete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, "Delete", apperrors.InvalidInput("id query parameter is required"))
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, mutationResponse{
		Success: true,
		Message: "Special fare deleted successfully",
	}); err != nil {
		h.log.Error("failed to write response", "handler", "Delete", "error", err)
	}
}

func (h *SpecialFareHandler) writeError(w http.ResponseWriter, op string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *SpecialFareHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/special-fares", h.ListPublic)

	router.GET("/api/admin/special-fares", h.auth(h.List))
	router.POST("/api/admin/special-fares", h.auth(h.Create))
	router.PUT("/api/admin/special-fares", h.auth(h.Update))
	router.DELETE("/api/admin/special-fares", h.auth(h.Delete))
}

func parseListFilter(query url.Values) (repository.ListFilter, error) {
	var filter repository.ListFilter

	for param, target := range map[string]**bool{
		"isActive":      &filter.IsActive,
		"isFeatured":    &filter.IsFeatured,
		"isLimitedTime": &filter.IsLimitedTime,
	} {
		if s := query.Get(param); s != "" {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return filter, apperrors.InvalidInput("invalid " + param + " parameter: " + s)
			}
			*target = &v
		}
	}

	if s := query.Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return filter, apperrors.InvalidInput("invalid limit parameter: " + s)
		}
		filter.Limit = v
	}

	return filter, nil
}
