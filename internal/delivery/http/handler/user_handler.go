package handler

import (
	"net/http"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/usecase"
	"patients-management/pkg/response"
	"patients-management/pkg/validator"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create user")
		return
	}

	response.Success(w, http.StatusCreated, "User created successfully", user)
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	params := newQueryParser(r)
	query := dto.UserListQuery{
		Search:        params.String("search"),
		Role:          params.String("role"),
		SecondaryRole: params.String("secondary_role"),
		PageQuery:     pageQuery(r),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	users, total, err := h.userUsecase.GetAll(r.Context(), &query)
	if err != nil {
		writeError(w, err, "Failed to get users")
		return
	}

	writeList(w, users, query.PageQuery, total)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "user")
	if !ok {
		return
	}

	user, err := h.userUsecase.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, err, "Failed to get user")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "user")
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.Update(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to update user")
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) PatchUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "user")
	if !ok {
		return
	}

	var req dto.PatchUserRequest
	if !bind(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.Patch(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, "Failed to update user")
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "user")
	if !ok {
		return
	}

	if err := h.userUsecase.Delete(r.Context(), userID); err != nil {
		writeError(w, err, "Failed to delete user")
		return
	}

	response.Success(w, http.StatusOK, "User deleted successfully", nil)
}
