package usecase

import (
	"context"
	"errors"
	"time"

	"patients-management/internal/converter"
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
	"patients-management/internal/domain/repository"
	"patients-management/internal/service"
	"patients-management/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrRecordNotFound = errors.New("record not found")

type RecordUsecase interface {
	Create(ctx context.Context, req *dto.CreateRecordRequest) (*dto.RecordResponse, error)
	GetAll(ctx context.Context, query *dto.RecordListQuery) ([]dto.RecordResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.RecordResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateRecordRequest) (*dto.RecordResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetPrescribedMedicines(ctx context.Context, id uuid.UUID) ([]dto.PrescribedMedicineResponse, error)
	GetTotalPrice(ctx context.Context, id uuid.UUID) (*dto.TotalPriceResponse, error)
}

type recordUsecase struct {
	db           repository.Transactor
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	recordRepo   repository.RecordRepository
	billing      service.BillingService
	auditService service.AuditService
	now          func() time.Time
}

func NewRecordUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	recordRepo repository.RecordRepository,
	billing service.BillingService,
	auditService service.AuditService,
	now func() time.Time,
) RecordUsecase {
	if now == nil {
		now = time.Now
	}
	return &recordUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		recordRepo:   recordRepo,
		billing:      billing,
		auditService: auditService,
		now:          now,
	}
}

func (u *recordUsecase) Create(ctx context.Context, req *dto.CreateRecordRequest) (*dto.RecordResponse, error) {
	issued := entity.DateOnly(u.now())
	if req.IssuedDate != "" {
		parsed, err := time.ParseInLocation(dto.DateLayout, req.IssuedDate, issued.Location())
		if err != nil {
			return nil, NewValidationError("issued_date", "issued_date must be a date in YYYY-MM-DD format")
		}
		issued = parsed
	}

	var record *entity.Record
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(tx, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		doctor, err := u.findDoctor(tx, req.DoctorID)
		if err != nil {
			return err
		}

		record = &entity.Record{
			PatientID:   patient.ID,
			DoctorID:    doctor.ID,
			VitalSigns:  req.VitalSigns,
			PastIllness: req.PastIllness,
			IssuedDate:  datatypes.Date(issued),
		}
		if err := u.recordRepo.Create(tx, record); err != nil {
			u.log.Warnf("Failed to create record: %+v", err)
			return err
		}
		record.Doctor = doctor

		return u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionRecordCreate, "record", record.ID.String(), converter.RecordToResponse(record, money.Zero))
	})
	if err != nil {
		return nil, err
	}

	return converter.RecordToResponse(record, money.Zero), nil
}

func (u *recordUsecase) GetAll(ctx context.Context, query *dto.RecordListQuery) ([]dto.RecordResponse, int64, error) {
	var (
		responses []dto.RecordResponse
		total     int64
	)
	err := u.db.WithinReadSnapshot(ctx, func(db *gorm.DB) error {
		records, count, err := u.recordRepo.FindAll(db, &entity.RecordFilter{
			PatientID:            query.PatientID,
			DoctorID:             query.DoctorID,
			DoctorSpecialization: query.DoctorSpecialization,
			Search:               query.Search,
			Pagination:           query.Pagination(),
		})
		if err != nil {
			u.log.Warnf("Failed to find records: %+v", err)
			return err
		}
		total = count

		responses, err = recordsWithTotals(db, u.billing, records)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func (u *recordUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.RecordResponse, error) {
	var response *dto.RecordResponse
	err := u.db.WithinReadSnapshot(ctx, func(db *gorm.DB) error {
		record, err := u.find(db, id)
		if err != nil {
			return err
		}

		total, err := u.billing.TotalForRecord(db, id)
		if err != nil {
			return err
		}

		response = converter.RecordToResponse(record, total)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (u *recordUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateRecordRequest) (*dto.RecordResponse, error) {
	issued, err := time.ParseInLocation(dto.DateLayout, req.IssuedDate, u.now().Location())
	if err != nil {
		return nil, NewValidationError("issued_date", "issued_date must be a date in YYYY-MM-DD format")
	}

	var response *dto.RecordResponse
	err = u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		record, err := u.find(tx, id)
		if err != nil {
			return err
		}
		total, err := u.billing.TotalForRecord(tx, id)
		if err != nil {
			return err
		}
		oldValue := converter.RecordToResponse(record, total)

		doctor, err := u.findDoctor(tx, req.DoctorID)
		if err != nil {
			return err
		}

		record.DoctorID = doctor.ID
		record.Doctor = doctor
		record.VitalSigns = req.VitalSigns
		record.PastIllness = req.PastIllness
		record.IssuedDate = datatypes.Date(issued)

		if err := u.recordRepo.Update(tx, record); err != nil {
			u.log.Warnf("Failed to update record: %+v", err)
			return err
		}

		response = converter.RecordToResponse(record, total)
		return u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionRecordUpdate, "record", id.String(), oldValue, response)
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// Delete removes the record with its prescriptions and their dispensing events.
func (u *recordUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		record, err := u.find(tx, id)
		if err != nil {
			return err
		}

		if _, err := u.recordRepo.Delete(tx, id); err != nil {
			u.log.Warnf("Failed to delete record: %+v", err)
			return err
		}

		return u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionRecordDelete, "record", id.String(), converter.RecordToResponse(record, money.Zero))
	})
}

func (u *recordUsecase) GetPrescribedMedicines(ctx context.Context, id uuid.UUID) ([]dto.PrescribedMedicineResponse, error) {
	record, err := u.find(u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.PrescribedMedicinesToResponses(record.PrescribedMedicines), nil
}

func (u *recordUsecase) GetTotalPrice(ctx context.Context, id uuid.UUID) (*dto.TotalPriceResponse, error) {
	var total decimal.Decimal
	err := u.db.WithinReadSnapshot(ctx, func(db *gorm.DB) error {
		if _, err := u.find(db, id); err != nil {
			return err
		}

		var err error
		total, err = u.billing.TotalForRecord(db, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.TotalPriceResponse{TotalPrice: money.Format(total)}, nil
}

func (u *recordUsecase) find(db *gorm.DB, id uuid.UUID) (*entity.Record, error) {
	record, err := u.recordRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (u *recordUsecase) findDoctor(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
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
