package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/luisfsill/Ponto-Digital/internal/domain/report"
	"github.com/luisfsill/Ponto-Digital/internal/handler/http/response"
)

type ReportHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	BankOfHours(w http.ResponseWriter, r *http.Request)
	ExportDaily(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.reportService.DailySummaries(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summaries)
}

func (h *reportHandlerImpl) BankOfHours(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reportService.BankOfHours(r.Context(), filterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, totals)
}

func (h *reportHandlerImpl) ExportDaily(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	filename := fmt.Sprintf("banco-de-horas-%s.csv", time.Now().Format("2006-01-02"))

	writeCSV(w, filename, func(buf *bytes.Buffer) error {
		return h.reportService.ExportSummaries(r.Context(), filter, buf)
	})
}
