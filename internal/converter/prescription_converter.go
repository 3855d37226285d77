package converter

import (
	"time"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
	"patients-management/pkg/money"

	"github.com/shopspring/decimal"
)

func PrescribedMedicineToResponse(prescription *entity.PrescribedMedicine) *dto.PrescribedMedicineResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescribedMedicineResponse{
		ID:            prescription.ID,
		RecordID:      prescription.RecordID,
		MedicineID:    prescription.MedicineID,
		MedicinePrice: money.Format(money.Zero),
		Dosage:        prescription.Dosage,
		CreatedAt:     prescription.CreatedAt,
	}
	if prescription.Medicine != nil {
		response.MedicineName = prescription.Medicine.DisplayName()
		response.MedicinePrice = money.Format(prescription.Medicine.Price)
	}

	return response
}

func PrescribedMedicinesToResponses(prescriptions []entity.PrescribedMedicine) []dto.PrescribedMedicineResponse {
	responses := make([]dto.PrescribedMedicineResponse, 0, len(prescriptions))
	for i := range prescriptions {
		responses = append(responses, *PrescribedMedicineToResponse(&prescriptions[i]))
	}
	return responses
}

func GivenMedicineToResponse(given *entity.GivenMedicine) *dto.GivenMedicineResponse {
	if given == nil {
		return nil
	}

	response := &dto.GivenMedicineResponse{
		ID:                   given.ID,
		PatientID:            given.PatientID,
		PrescribedMedicineID: given.PrescribedMedicineID,
		Quantity:             given.Quantity,
		GivenAt:              given.GivenAt,
		TotalPrice:           money.Format(given.TotalPrice()),
	}
	if m := given.Medicine(); m != nil {
		response.MedicineName = m.DisplayName()
	}

	return response
}

func GivenMedicinesToResponses(given []entity.GivenMedicine) []dto.GivenMedicineResponse {
	responses := make([]dto.GivenMedicineResponse, 0, len(given))
	for i := range given {
		responses = append(responses, *GivenMedicineToResponse(&given[i]))
	}
	return responses
}

// RecordToResponse converts a Record with its prescriptions preloaded.
// total is the record's dispensed amount computed by the billing service.
func RecordToResponse(record *entity.Record, total decimal.Decimal) *dto.RecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.RecordResponse{
		ID:                       record.ID,
		PatientID:                record.PatientID,
		DoctorID:                 record.DoctorID,
		VitalSigns:               record.VitalSigns,
		PastIllness:              record.PastIllness,
		IssuedDate:               time.Time(record.IssuedDate).Format(dto.DateLayout),
		IsDefault:                record.IsDefault,
		PrescribedMedicines:      PrescribedMedicinesToResponses(record.PrescribedMedicines),
		TotalMedicinePrice:       money.Format(total),
		TotalPrescribedMedicines: len(record.PrescribedMedicines),
		CreatedAt:                record.CreatedAt,
	}
	if record.Doctor != nil {
		response.DoctorName = record.Doctor.Name
		response.DoctorSpecialization = record.Doctor.Specialization
	}

	return response
}
