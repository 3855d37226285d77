package converter

import (
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
)

func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             doctor.ID,
		UserID:         doctor.UserID,
		Username:       doctor.User.Username,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		MobileNumber:   doctor.MobileNumber,
		CreatedAt:      doctor.CreatedAt,
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		responses = append(responses, *DoctorToResponse(&doctors[i]))
	}
	return responses
}
