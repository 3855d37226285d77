package handler

import (
	"net/http"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/usecase"
	"patients-management/pkg/response"
	"patients-management/pkg/validator"
)

type MedicineHandler struct {
	medicineUsecase usecase.MedicineUsecase
	validator       *validator.CustomValidator
}

func NewMedicineHandler(medicineUsecase usecase.MedicineUsecase, validator *validator.CustomValidator) *MedicineHandler {
	return &MedicineHandler{
		medicineUsecase: medicineUsecase,
		validator:       validator,
	}
}

func (h *MedicineHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicineRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	medicine, err := h.medicineUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create medicine")
		return
	}

	response.Success(w, http.StatusCreated, "Medicine created successfully", medicine)
}

func (h *MedicineHandler) GetMedicine(w http.ResponseWriter, r *http.Request) {
	medicineID, ok := pathUUID(w, r, "medicine")
	if !ok {
		return
	}

	medicine, err := h.medicineUsecase.GetByID(r.Context(), medicineID)
	if err != nil {
		writeError(w, err, "Failed to get medicine")
		return
	}

	response.Success(w, http.StatusOK, "Medicine retrieved successfully", medicine)
}

func (h *MedicineHandler) GetAllMedicines(w http.ResponseWriter, r *http.Request) {
	query := dto.MedicineListQuery{
		Search:    r.URL.Query().Get("search"),
		PageQuery: pageQuery(r),
	}

	medicines, total, err := h.medicineUsecase.GetAll(r.Context(), &query)
	if err != nil {
		writeError(w, err, "Failed to get medicines")
		return
	}

	writeList(w, medicines, query.PageQuery, total)
}

func (h *MedicineHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	medicineID, ok := pathUUID(w, r, "medicine")
	if !ok {
		return
	}

	var req dto.UpdateMedicineRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	medicine, err := h.medicineUsecase.Update(r.Context(), medicineID, &req)
	if err != nil {
		writeError(w, err, "Failed to update medicine")
		return
	}

	response.Success(w, http.StatusOK, "Medicine updated successfully", medicine)
}

func (h *MedicineHandler) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	medicineID, ok := pathUUID(w, r, "medicine")
	if !ok {
		return
	}

	if err := h.medicineUsecase.Delete(r.Context(), medicineID); err != nil {
		writeError(w, err, "Failed to delete medicine")
		return
	}

	response.Success(w, http.StatusOK, "Medicine deleted successfully", nil)
}
