package handler

import (
	"net/http"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/usecase"
	"patients-management/pkg/response"
	"patients-management/pkg/validator"
)

type PrescribedMedicineHandler struct {
	prescribedMedicineUsecase usecase.PrescribedMedicineUsecase
	validator                 *validator.CustomValidator
}

func NewPrescribedMedicineHandler(prescribedMedicineUsecase usecase.PrescribedMedicineUsecase, validator *validator.CustomValidator) *PrescribedMedicineHandler {
	return &PrescribedMedicineHandler{
		prescribedMedicineUsecase: prescribedMedicineUsecase,
		validator:                 validator,
	}
}

// CreatePrescribedMedicine prescribes a medicine
// @Summary Create prescribed medicine
// @Description Prescribe on a record, or on the patient's default record when only patient is given
// @Tags Prescribed Medicines
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePrescribedMedicineRequest true "Create Prescribed Medicine Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /prescribed-medicines [post]
func (h *PrescribedMedicineHandler) CreatePrescribedMedicine(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePrescribedMedicineRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescribedMedicineUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create prescribed medicine")
		return
	}

	response.Success(w, http.StatusCreated, "Prescribed medicine created successfully", prescription)
}

func (h *PrescribedMedicineHandler) GetAllPrescribedMedicines(w http.ResponseWriter, r *http.Request) {
	params := newQueryParser(r)
	query := dto.PrescribedMedicineListQuery{
		RecordID:   params.UUID("record"),
		MedicineID: params.UUID("medicine"),
		PageQuery:  pageQuery(r),
	}
	if !params.Valid(w) {
		return
	}

	prescriptions, total, err := h.prescribedMedicineUsecase.GetAll(r.Context(), &query)
	if err != nil {
		writeError(w, err, "Failed to get prescribed medicines")
		return
	}

	writeList(w, prescriptions, query.PageQuery, total)
}

func (h *PrescribedMedicineHandler) GetPrescribedMedicine(w http.ResponseWriter, r *http.Request) {
	prescriptionID, ok := pathUUID(w, r, "prescribed medicine")
	if !ok {
		return
	}

	prescription, err := h.prescribedMedicineUsecase.GetByID(r.Context(), prescriptionID)
	if err != nil {
		writeError(w, err, "Failed to get prescribed medicine")
		return
	}

	response.Success(w, http.StatusOK, "Prescribed medicine retrieved successfully", prescription)
}

func (h *PrescribedMedicineHandler) UpdatePrescribedMedicine(w http.ResponseWriter, r *http.Request) {
	prescriptionID, ok := pathUUID(w, r, "prescribed medicine")
	if !ok {
		return
	}

	var req dto.UpdatePrescribedMedicineRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescribedMedicineUsecase.Update(r.Context(), prescriptionID, &req)
	if err != nil {
		writeError(w, err, "Failed to update prescribed medicine")
		return
	}

	response.Success(w, http.StatusOK, "Prescribed medicine updated successfully", prescription)
}

func (h *PrescribedMedicineHandler) DeletePrescribedMedicine(w http.ResponseWriter, r *http.Request) {
	prescriptionID, ok := pathUUID(w, r, "prescribed medicine")
	if !ok {
		return
	}

	if err := h.prescribedMedicineUsecase.Delete(r.Context(), prescriptionID); err != nil {
		writeError(w, err, "Failed to delete prescribed medicine")
		return
	}

	response.Success(w, http.StatusOK, "Prescribed medicine deleted successfully", nil)
}
