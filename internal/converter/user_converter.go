package converter

import (
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO.
// DoctorID is set when the linked doctor is loaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Number:    user.Number,
		Role:      user.Role.String(),
		IsActive:  user.Active(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	if user.SecondaryRole != nil {
		secondary := user.SecondaryRole.String()
		response.SecondaryRole = &secondary
	}

	if user.Doctor != nil {
		doctorID := user.Doctor.ID
		response.DoctorID = &doctorID
	}

	return response
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *UserToResponse(&users[i]))
	}
	return responses
}
