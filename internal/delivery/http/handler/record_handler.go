package handler

import (
	"net/http"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/usecase"
	"patients-management/pkg/response"
	"patients-management/pkg/validator"
)

type RecordHandler struct {
	recordUsecase usecase.RecordUsecase
	validator     *validator.CustomValidator
}

func NewRecordHandler(recordUsecase usecase.RecordUsecase, validator *validator.CustomValidator) *RecordHandler {
	return &RecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecordRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create record")
		return
	}

	response.Success(w, http.StatusCreated, "Record created successfully", record)
}

func (h *RecordHandler) GetAllRecords(w http.ResponseWriter, r *http.Request) {
	params := newQueryParser(r)
	query := dto.RecordListQuery{
		PatientID:            params.UUID("patient"),
		DoctorID:             params.UUID("doctor"),
		DoctorSpecialization: params.String("doctor_specialization"),
		Search:               params.String("search"),
		PageQuery:            pageQuery(r),
	}
	if !params.Valid(w) {
		return
	}

	records, total, err := h.recordUsecase.GetAll(r.Context(), &query)
	if err != nil {
		writeError(w, err, "Failed to get records")
		return
	}

	writeList(w, records, query.PageQuery, total)
}

func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "record")
	if !ok {
		return
	}

	record, err := h.recordUsecase.GetByID(r.Context(), recordID)
	if err != nil {
		writeError(w, err, "Failed to get record")
		return
	}

	response.Success(w, http.StatusOK, "Record retrieved successfully", record)
}

func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "record")
	if !ok {
		return
	}

	var req dto.UpdateRecordRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	record, err := h.recordUsecase.Update(r.Context(), recordID, &req)
	if err != nil {
		writeError(w, err, "Failed to update record")
		return
	}

	response.Success(w, http.StatusOK, "Record updated successfully", record)
}

func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "record")
	if !ok {
		return
	}

	if err := h.recordUsecase.Delete(r.Context(), recordID); err != nil {
		writeError(w, err, "Failed to delete record")
		return
	}

	response.Success(w, http.StatusOK, "Record deleted successfully", nil)
}

func (h *RecordHandler) GetRecordPrescribedMedicines(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "record")
	if !ok {
		return
	}

	prescribed, err := h.recordUsecase.GetPrescribedMedicines(r.Context(), recordID)
	if err != nil {
		writeError(w, err, "Failed to get prescribed medicines")
		return
	}

	response.List(w, prescribed, nil)
}

func (h *RecordHandler) GetRecordTotalPrice(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "record")
	if !ok {
		return
	}

	total, err := h.recordUsecase.GetTotalPrice(r.Context(), recordID)
	if err != nil {
		writeError(w, err, "Failed to get total price")
		return
	}

	response.Success(w, http.StatusOK, "Total price retrieved successfully", total)
}
