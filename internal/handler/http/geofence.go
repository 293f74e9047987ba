package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/luisfsill/Ponto-Digital/internal/domain/geofence"
	"github.com/luisfsill/Ponto-Digital/internal/handler/http/response"
)

type GeofenceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	SetActive(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	CheckInURL(w http.ResponseWriter, r *http.Request)
}

type geofenceHandlerImpl struct {
	geofenceService geofence.GeofenceService
}

func NewGeofenceHandler(geofenceService geofence.GeofenceService) GeofenceHandler {
	return &geofenceHandlerImpl{geofenceService: geofenceService}
}

func (h *geofenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	fences, err := h.geofenceService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, fences)
}

func (h *geofenceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	fence, err := h.geofenceService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, fence)
}

func (h *geofenceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req geofence.CreateGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create geofence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	fence, err := h.geofenceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Geofence created successfully", fence)
}

func (h *geofenceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req geofence.UpdateGeofenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update geofence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	fence, err := h.geofenceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Geofence updated successfully", fence)
}

func (h *geofenceHandlerImpl) SetActive(w http.ResponseWriter, r *http.Request) {
	var req geofence.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Set geofence active decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	fence, err := h.geofenceService.SetActive(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, fence)
}

func (h *geofenceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.geofenceService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Geofence deleted successfully", nil)
}

func (h *geofenceHandlerImpl) CheckInURL(w http.ResponseWriter, r *http.Request) {
	link, err := h.geofenceService.CheckInURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, link)
}
