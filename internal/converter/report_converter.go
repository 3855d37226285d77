package converter

import (
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
	"patients-management/pkg/money"
)

func MedicineUsageToResponses(usage []entity.MedicineUsage) []dto.MedicineUsageResponse {
	responses := make([]dto.MedicineUsageResponse, 0, len(usage))
	for _, u := range usage {
		responses = append(responses, dto.MedicineUsageResponse{
			MedicineName:  entity.DisplayName(u.Name, u.Dose),
			TotalQuantity: u.TotalQuantity,
			PricePerUnit:  money.Format(u.PricePerUnit),
			TotalPrice:    money.Format(u.TotalPrice),
		})
	}
	return responses
}
