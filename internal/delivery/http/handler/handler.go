package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/usecase"
	"patients-management/pkg/response"
	"patients-management/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// bind decodes the JSON body into req and validates it, writing the
// 400 response itself when either step fails.
func bind(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(req); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

func pathUUID(w http.ResponseWriter, r *http.Request, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+entity+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func pageQuery(r *http.Request) dto.PageQuery {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return dto.PageQuery{Page: page, Limit: limit}.Normalize()
}

// queryParser collects malformed query parameters so a handler can report
// them together.
type queryParser struct {
	r      *http.Request
	errors map[string]string
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{r: r, errors: map[string]string{}}
}

func (p *queryParser) String(name string) string {
	return strings.TrimSpace(p.r.URL.Query().Get(name))
}

func (p *queryParser) UUID(name string) *uuid.UUID {
	raw := p.String(name)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		p.errors[name] = name + " must be a valid UUID"
		return nil
	}
	return &id
}

func (p *queryParser) Bool(name string) *bool {
	raw := p.String(name)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.errors[name] = name + " must be true or false"
		return nil
	}
	return &b
}

// Valid writes the 400 response when any parameter was malformed.
func (p *queryParser) Valid(w http.ResponseWriter) bool {
	if len(p.errors) == 0 {
		return true
	}
	response.ValidationError(w, p.errors)
	return false
}

func writeList(w http.ResponseWriter, results interface{}, page dto.PageQuery, total int64) {
	response.List(w, results, response.NewMeta(page.Page, page.Limit, total))
}

// writeError maps use case errors onto HTTP statuses. Unknown errors become
// a 500 carrying fallback.
func writeError(w http.ResponseWriter, err error, fallback string) {
	if vErr, ok := usecase.AsValidationError(err); ok {
		response.ValidationError(w, vErr.Fields)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrPatientNotFound),
		errors.Is(err, usecase.ErrDoctorNotFound),
		errors.Is(err, usecase.ErrMedicineNotFound),
		errors.Is(err, usecase.ErrRecordNotFound),
		errors.Is(err, usecase.ErrPrescribedMedicineNotFound),
		errors.Is(err, usecase.ErrGivenMedicineNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, sentence(err))
	case errors.Is(err, usecase.ErrUsernameAlreadyExists),
		errors.Is(err, usecase.ErrDoctorHasRecords),
		errors.Is(err, usecase.ErrMedicineInUse),
		errors.Is(err, usecase.ErrUserLinkedToDoctor):
		response.Conflict(w, sentence(err))
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken),
		errors.Is(err, usecase.ErrTokenRevoked):
		response.Unauthorized(w, sentence(err))
	case errors.Is(err, usecase.ErrUserInactive):
		response.Forbidden(w, sentence(err))
	default:
		response.InternalServerError(w, fallback)
	}
}

func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
