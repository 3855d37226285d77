package usecase

import (
	"context"
	"errors"

	"patients-management/internal/converter"
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
	"patients-management/internal/domain/repository"
	"patients-management/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrDoctorHasRecords = errors.New("doctor has records and cannot be deleted")
)

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetAll(ctx context.Context, query *dto.DoctorListQuery) ([]dto.DoctorResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type doctorUsecase struct {
	db           repository.Transactor
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	recordRepo   repository.RecordRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	recordRepo repository.RecordRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		recordRepo:   recordRepo,
		auditService: auditService,
	}
}

// Create links a doctor profile to an existing account holding the doctor role.
func (u *doctorUsecase) Create(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	var doctor *entity.Doctor
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		user, err := u.userRepo.FindByID(tx, req.UserID)
		if err != nil {
			u.log.Warnf("Failed to find user by ID: %+v", err)
			return err
		}
		if user == nil {
			return NewValidationError("user", "user does not exist")
		}
		if !user.HasRole(entity.RoleDoctor) {
			return NewValidationError("user", "The user must have a 'doctor' role")
		}

		linked, err := u.doctorRepo.FindByUserID(tx, user.ID)
		if err != nil {
			u.log.Warnf("Failed to find doctor by user ID: %+v", err)
			return err
		}
		if linked != nil {
			return NewValidationError("user", "user is already linked to a doctor")
		}

		doctor = &entity.Doctor{
			UserID:         user.ID,
			Name:           req.Name,
			Specialization: req.Specialization,
			MobileNumber:   req.MobileNumber,
		}
		if err := u.doctorRepo.Create(tx, doctor); err != nil {
			if isDuplicateKeyError(err, "user") {
				return NewValidationError("user", "user is already linked to a doctor")
			}
			u.log.Warnf("Failed to create doctor: %+v", err)
			return err
		}
		doctor.User = *user

		return u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), converter.DoctorToResponse(doctor))
	})
	if err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAll(ctx context.Context, query *dto.DoctorListQuery) ([]dto.DoctorResponse, int64, error) {
	doctors, total, err := u.doctorRepo.FindAll(u.db.Conn(ctx), &entity.DoctorFilter{
		Search:     query.Search,
		Pagination: query.Pagination(),
	})
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, 0, err
	}

	return converter.DoctorsToResponses(doctors), total, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.find(u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	var doctor *entity.Doctor
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		doctor, err = u.find(tx, id)
		if err != nil {
			return err
		}
		oldValue := converter.DoctorToResponse(doctor)

		doctor.Name = req.Name
		doctor.Specialization = req.Specialization
		doctor.MobileNumber = req.MobileNumber

		if err := u.doctorRepo.Update(tx, doctor); err != nil {
			u.log.Warnf("Failed to update doctor: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionDoctorUpdate, "doctor", id.String(), oldValue, converter.DoctorToResponse(doctor))
	})
	if err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

// Delete refuses while any record still references the doctor.
func (u *doctorUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.find(tx, id)
		if err != nil {
			return err
		}

		count, err := u.recordRepo.CountByDoctorID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to count doctor records: %+v", err)
			return err
		}
		if count > 0 {
			return ErrDoctorHasRecords
		}

		if _, err := u.doctorRepo.Delete(tx, id); err != nil {
			if isForeignKeyError(err, "doctor") {
				return ErrDoctorHasRecords
			}
			u.log.Warnf("Failed to delete doctor: %+v", err)
			return err
		}

		return u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionDoctorDelete, "doctor", id.String(), converter.DoctorToResponse(doctor))
	})
}

func (u *doctorUsecase) find(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
