package handler

import (
	"net/http"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/usecase"
	"patients-management/pkg/response"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
	}
}

// GetMedicineReport summarises dispensed medicines
// @Summary Medicine usage report
// @Description Group dispensed medicines by name, dose and price over a date window
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param from_date query string false "Inclusive start, YYYY-MM-DD"
// @Param to_date query string false "Inclusive end, YYYY-MM-DD"
// @Param period query string false "today or month; overrides the dates"
// @Param area query string false "Exact patient area"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /reports/medicines [get]
func (h *ReportHandler) GetMedicineReport(w http.ResponseWriter, r *http.Request) {
	params := newQueryParser(r)
	query := dto.MedicineReportQuery{
		FromDate: params.String("from_date"),
		ToDate:   params.String("to_date"),
		Area:     params.String("area"),
		Period:   params.String("period"),
	}

	report, err := h.reportUsecase.GenerateMedicineReport(r.Context(), &query)
	if err != nil {
		writeError(w, err, "Failed to generate medicine report")
		return
	}

	response.Success(w, http.StatusOK, "Medicine report generated successfully", report)
}
