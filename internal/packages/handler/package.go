package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"roamly/internal/packages/repository"
	"roamly/internal/packages/service"
	apperrors "roamly/pkg/errors"
	httputil "roamly/pkg/http"
	"roamly/pkg/logger"
	"roamly/pkg/model"
)

// Response envelopes match what the admin dashboard and the public site
// already consume.
type listResponse struct {
	Packages []*model.Package `json:"packages"`
}

type mutationResponse struct {
	Message string         `json:"message"`
	Data    *model.Package `json:"data,omitempty"`
}

type PackageHandler struct {
	service service.PackageService
	auth    func(httprouter.Handle) httprouter.Handle
	log     *logger.Logger
}

func NewPackageHandler(
	service service.PackageService,
	auth func(httprouter.Handle) httprouter.Handle,
	log *logger.Logger,
) *PackageHandler {
	return &PackageHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

// ListPublic serves the brochure site: only active packages, newest first.
func (h *PackageHandler) ListPublic(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := parseListFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, "ListPublic", err)
		return
	}
	active := true
	filter.IsActive = &active

	h.list(w, r, "ListPublic", filter)
}

// List serves the admin dashboard: no implicit filters, so soft-deleted
// special fares' counterpart behavior (inactive records visible) holds for
// packages too.
func (h *PackageHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter, err := parseListFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	h.list(w, r, "List", filter)
}

func (h *PackageHandler) list(w http.ResponseWriter, r *http.Request, op string, filter repository.ListFilter) {
	packages, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, op, err)
		return
	}

	if err := httputil.WriteSuccess(w, listResponse{Packages: packages}); err != nil {
		h.log.Error("failed to write response", "handler", op, "error", err)
	}
}

func (h *PackageHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pkg := model.Package{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.Create(r.Context(), &pkg); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, mutationResponse{
		Message: "Package created successfully",
		Data:    &pkg,
	}); err != nil {
		h.log.Error("failed to write response", "handler", "Create", "error", err)
	}
}

func (h *PackageHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, "Update", apperrors.InvalidInput("id query parameter is required"))
		return
	}

	var updates model.PackageUpdate
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
		Message: "Package updated successfully",
		Data:    updated,
	}); err != nil {
		h.log.Error("failed to write response", "handler", "Update", "error", err)
	}
}

func (h *PackageHandler) Delete(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, "Delete", apperrors.InvalidInput("id query parameter is required"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteSuccess(w, mutationResponse{
		Message: "Package deleted successfully",
	}); err != nil {
		h.log.Error("failed to write response", "handler", "Delete", "error", err)
	}
}

func (h *PackageHandler) writeError(w http.ResponseWriter, op string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}

func (h *PackageHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/packages", h.ListPublic)

	router.GET("/api/admin/packages", h.auth(h.List))
	router.POST("/api/admin/packages", h.auth(h.Create))
	router.PUT("/api/admin/packages", h.auth(h.Update))
	router.DELETE("/api/admin/packages", h.auth(h.Delete))
}

// parseListFilter builds the list filter from only the parameters present in
// the query string.
func parseListFilter(query url.Values) (repository.ListFilter, error) {
	var filter repository.ListFilter

	for param, target := range map[string]**bool{
		"isActive":   &filter.IsActive,
		"isFeatured": &filter.IsFeatured,
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
