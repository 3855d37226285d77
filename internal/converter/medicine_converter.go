package converter

import (
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
	"patients-management/pkg/money"
)

func MedicineToResponse(medicine *entity.Medicine) *dto.MedicineResponse {
	if medicine == nil {
		return nil
	}

	return &dto.MedicineResponse{
		ID:             medicine.ID,
		Name:           medicine.Name,
		Dose:           medicine.Dose,
		ScientificName: medicine.ScientificName,
		Company:        medicine.Company,
		Price:          money.Format(medicine.Price),
		CreatedAt:      medicine.CreatedAt,
		UpdatedAt:      medicine.UpdatedAt,
	}
}

func MedicinesToResponses(medicines []entity.Medicine) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, 0, len(medicines))
	for i := range medicines {
		responses = append(responses, *MedicineToResponse(&medicines[i]))
	}
	return responses
}
