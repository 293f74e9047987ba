package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/luisfsill/Ponto-Digital/internal/domain/record"
	"github.com/luisfsill/Ponto-Digital/internal/handler/http/response"
)

const maxImportSize = 10 << 20

type RecordHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	BulkDelete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type recordHandlerImpl struct {
	recordService record.RecordService
}

func NewRecordHandler(recordService record.RecordService) RecordHandler {
	return &recordHandlerImpl{recordService: recordService}
}

// filterFromQuery reads user_id, start_date and end_date.
func filterFromQuery(r *http.Request) record.FilterRequest {
	q := r.URL.Query()
	return record.FilterRequest{
		UserID:    q.Get("user_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeCSV buffers the export so a failure can still be reported as JSON.
func writeCSV(w http.ResponseWriter, filename string, write func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("CSV write error", "error", err)
	}
}

func (h *recordHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req record.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Clock in decode error", "error", err)
		response.BadRequest(w, "Formato de requisição inválido", nil)
		return
	}
	req.IP = clientIP(r)

	resp, err := h.recordService.ClockIn(r.Context(), req)
	if err != nil {
		slog.Warn("Clock in rejected", "device_id", req.DeviceID, "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, resp.Message, resp)
}

func (h *recordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.recordService.List(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

func (h *recordHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.recordService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Record deleted successfully", nil)
}

func (h *recordHandlerImpl) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req record.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Bulk delete decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.recordService.BulkDelete(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, fmt.Sprintf("%d records deleted", resp.Deleted), resp)
}

func (h *recordHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.BadRequest(w, "File too large", nil)
			return
		}
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required", nil)
		return
	}
	defer file.Close()

	resp, err := h.recordService.Import(r.Context(), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, fmt.Sprintf("%d records imported", resp.Imported), resp)
}

func (h *recordHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	filename := fmt.Sprintf("registros-%s.csv", time.Now().Format("2006-01-02"))

	writeCSV(w, filename, func(buf *bytes.Buffer) error {
		return h.recordService.Export(r.Context(), filter, buf)
	})
}
