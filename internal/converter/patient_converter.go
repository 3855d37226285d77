package converter

import (
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
)

// PatientToResponse converts a Patient entity. stats may be nil for a patient
// without records.
func PatientToResponse(patient *entity.Patient, stats *entity.PatientRecordStats) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:           patient.ID,
		FullName:     patient.FullName,
		Age:          patient.Age,
		Gender:       patient.Gender,
		Area:         patient.Area,
		MobileNumber: patient.MobileNumber,
		Status:       string(patient.Status),
		IsWaiting:    patient.IsWaiting,
		CreatedAt:    patient.CreatedAt,
		UpdatedAt:    patient.UpdatedAt,
	}

	if stats != nil {
		response.RecordsCount = stats.RecordsCount
		if stats.LastVisit != nil {
			lastVisit := stats.LastVisit.Format(dto.DateLayout)
			response.LastVisit = &lastVisit
		}
	}

	return response
}
