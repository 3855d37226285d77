package handler

import (
	"net/http"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/usecase"
	"patients-management/pkg/response"
	"patients-management/pkg/validator"
)

type GivenMedicineHandler struct {
	givenMedicineUsecase usecase.GivenMedicineUsecase
	validator            *validator.CustomValidator
}

func NewGivenMedicineHandler(givenMedicineUsecase usecase.GivenMedicineUsecase, validator *validator.CustomValidator) *GivenMedicineHandler {
	return &GivenMedicineHandler{
		givenMedicineUsecase: givenMedicineUsecase,
		validator:            validator,
	}
}

// CreateGivenMedicine records a dispensing event
// @Summary Create given medicine
// @Description Dispense against a prescription, or against a medicine and dosage on the patient's default record
// @Tags Given Medicines
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateGivenMedicineRequest true "Create Given Medicine Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /given-medicines [post]
func (h *GivenMedicineHandler) CreateGivenMedicine(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGivenMedicineRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	given, err := h.givenMedicineUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create given medicine")
		return
	}

	response.Success(w, http.StatusCreated, "Given medicine created successfully", given)
}

func (h *GivenMedicineHandler) GetAllGivenMedicines(w http.ResponseWriter, r *http.Request) {
	params := newQueryParser(r)
	query := dto.GivenMedicineListQuery{
		PatientID:            params.UUID("patient"),
		PrescribedMedicineID: params.UUID("prescribed_medicine"),
		PageQuery:            pageQuery(r),
	}
	if !params.Valid(w) {
		return
	}

	given, total, err := h.givenMedicineUsecase.GetAll(r.Context(), &query)
	if err != nil {
		writeError(w, err, "Failed to get given medicines")
		return
	}

	writeList(w, given, query.PageQuery, total)
}

func (h *GivenMedicineHandler) GetGivenMedicine(w http.ResponseWriter, r *http.Request) {
	givenID, ok := pathUUID(w, r, "given medicine")
	if !ok {
		return
	}

	given, err := h.givenMedicineUsecase.GetByID(r.Context(), givenID)
	if err != nil {
		writeError(w, err, "Failed to get given medicine")
		return
	}

	response.Success(w, http.StatusOK, "Given medicine retrieved successfully", given)
}

func (h *GivenMedicineHandler) UpdateGivenMedicine(w http.ResponseWriter, r *http.Request) {
	givenID, ok := pathUUID(w, r, "given medicine")
	if !ok {
		return
	}

	var req dto.UpdateGivenMedicineRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	given, err := h.givenMedicineUsecase.Update(r.Context(), givenID, &req)
	if err != nil {
		writeError(w, err, "Failed to update given medicine")
		return
	}

	response.Success(w, http.StatusOK, "Given medicine updated successfully", given)
}

func (h *GivenMedicineHandler) DeleteGivenMedicine(w http.ResponseWriter, r *http.Request) {
	givenID, ok := pathUUID(w, r, "given medicine")
	if !ok {
		return
	}

	if err := h.givenMedicineUsecase.Delete(r.Context(), givenID); err != nil {
		writeError(w, err, "Failed to delete given medicine")
		return
	}

	response.Success(w, http.StatusOK, "Given medicine deleted successfully", nil)
}
