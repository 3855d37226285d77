package handler

import (
	"net/http"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/usecase"
	"patients-management/pkg/response"
	"patients-management/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// CreatePatient registers a patient
// @Summary Create patient
// @Description Register a patient. An identical patient (name, age, gender) is returned instead of duplicated.
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} response.Response
// @Success 200 {object} dto.ExistingPatientResponse
// @Failure 400 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	patient, existed, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create patient")
		return
	}

	if existed {
		response.JSON(w, http.StatusOK, dto.ExistingPatientResponse{
			Success:   true,
			Message:   "Patient Already Exists",
			PatientID: patient.ID,
			Data:      patient,
		})
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

// GetAllPatients lists patients
// @Summary List patients
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param search query string false "Name or mobile number"
// @Param status query string false "active, pending or inactive"
// @Param area query string false "Exact area"
// @Param is_waiting query bool false "Waiting flag"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	params := newQueryParser(r)
	query := dto.PatientListQuery{
		Search:    params.String("search"),
		Status:    params.String("status"),
		Area:      params.String("area"),
		IsWaiting: params.Bool("is_waiting"),
		PageQuery: pageQuery(r),
	}
	if !params.Valid(w) {
		return
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patients, total, err := h.patientUsecase.GetAll(r.Context(), &query)
	if err != nil {
		writeError(w, err, "Failed to get patients")
		return
	}

	writeList(w, patients, query.PageQuery, total)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "patient")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetByID(r.Context(), patientID)
	if err != nil {
		writeError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "patient")
	if !ok {
		return
	}

	var req dto.UpdatePatientRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), patientID, &req)
	if err != nil {
		writeError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

// DeletePatient removes a patient with all records, prescriptions and dispensing
// @Summary Delete patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [delete]
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "patient")
	if !ok {
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), patientID); err != nil {
		writeError(w, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *PatientHandler) GetPatientRecords(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "patient")
	if !ok {
		return
	}

	records, err := h.patientUsecase.GetRecords(r.Context(), patientID)
	if err != nil {
		writeError(w, err, "Failed to get patient records")
		return
	}

	response.List(w, records, nil)
}

func (h *PatientHandler) GetPatientPrescribedMedicines(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "patient")
	if !ok {
		return
	}

	prescribed, err := h.patientUsecase.GetPrescribedMedicines(r.Context(), patientID)
	if err != nil {
		writeError(w, err, "Failed to get prescribed medicines")
		return
	}

	response.Success(w, http.StatusOK, "Prescribed medicines retrieved successfully", prescribed)
}

func (h *PatientHandler) GetPatientGivenMedicines(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "patient")
	if !ok {
		return
	}

	given, err := h.patientUsecase.GetGivenMedicines(r.Context(), patientID)
	if err != nil {
		writeError(w, err, "Failed to get given medicines")
		return
	}

	response.Success(w, http.StatusOK, "Given medicines retrieved successfully", given)
}

func (h *PatientHandler) GetPatientTotalPrice(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "patient")
	if !ok {
		return
	}

	total, err := h.patientUsecase.GetTotalPrice(r.Context(), patientID)
	if err != nil {
		writeError(w, err, "Failed to get total price")
		return
	}

	response.Success(w, http.StatusOK, "Total price retrieved successfully", total)
}
