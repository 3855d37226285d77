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

var ErrPrescribedMedicineNotFound = errors.New("prescribed medicine not found")

type PrescribedMedicineUsecase interface {
	Create(ctx context.Context, req *dto.CreatePrescribedMedicineRequest) (*dto.PrescribedMedicineResponse, error)
	GetAll(ctx context.Context, query *dto.PrescribedMedicineListQuery) ([]dto.PrescribedMedicineResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PrescribedMedicineResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePrescribedMedicineRequest) (*dto.PrescribedMedicineResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type prescribedMedicineUsecase struct {
	db                     repository.Transactor
	log                    *logrus.Logger
	recordRepo             repository.RecordRepository
	medicineRepo           repository.MedicineRepository
	prescribedMedicineRepo repository.PrescribedMedicineRepository
	defaultRecords         service.DefaultRecordService
	auditService           service.AuditService
}

func NewPrescribedMedicineUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	recordRepo repository.RecordRepository,
	medicineRepo repository.MedicineRepository,
	prescribedMedicineRepo repository.PrescribedMedicineRepository,
	defaultRecords service.DefaultRecordService,
	auditService service.AuditService,
) PrescribedMedicineUsecase {
	return &prescribedMedicineUsecase{
		db:                     db,
		log:                    log,
		recordRepo:             recordRepo,
		medicineRepo:           medicineRepo,
		prescribedMedicineRepo: prescribedMedicineRepo,
		defaultRecords:         defaultRecords,
		auditService:           auditService,
	}
}

// Create prescribes on the given record, or on the patient's default record
// when only a patient is supplied.
func (u *prescribedMedicineUsecase) Create(ctx context.Context, req *dto.CreatePrescribedMedicineRequest) (*dto.PrescribedMedicineResponse, error) {
	var prescription *entity.PrescribedMedicine
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		medicine, err := findMedicine(tx, u.log, u.medicineRepo, req.MedicineID)
		if err != nil {
			return err
		}

		var record *entity.Record
		if req.RecordID != nil {
			record, err = u.recordRepo.FindByID(tx, *req.RecordID)
			if err != nil {
				u.log.Warnf("Failed to find record: %+v", err)
				return err
			}
			if record == nil {
				return ErrRecordNotFound
			}
			if req.PatientID != nil && record.PatientID != *req.PatientID {
				return NewValidationError("record", "record does not belong to the given patient")
			}
		} else {
			record, err = resolveDefaultRecord(tx, u.defaultRecords, *req.PatientID)
			if err != nil {
				return err
			}
		}

		prescription = &entity.PrescribedMedicine{
			RecordID:   record.ID,
			MedicineID: medicine.ID,
			Dosage:     req.Dosage,
		}
		if err := u.prescribedMedicineRepo.Create(tx, prescription); err != nil {
			u.log.Warnf("Failed to create prescribed medicine: %+v", err)
			return err
		}
		prescription.Medicine = medicine

		return u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionPrescriptionCreate, "prescribed_medicine", prescription.ID.String(), converter.PrescribedMedicineToResponse(prescription))
	})
	if err != nil {
		return nil, err
	}

	return converter.PrescribedMedicineToResponse(prescription), nil
}

func (u *prescribedMedicineUsecase) GetAll(ctx context.Context, query *dto.PrescribedMedicineListQuery) ([]dto.PrescribedMedicineResponse, int64, error) {
	prescriptions, total, err := u.prescribedMedicineRepo.FindAll(u.db.Conn(ctx), &entity.PrescribedMedicineFilter{
		RecordID:   query.RecordID,
		MedicineID: query.MedicineID,
		Pagination: query.Pagination(),
	})
	if err != nil {
		u.log.Warnf("Failed to find prescribed medicines: %+v", err)
		return nil, 0, err
	}

	return converter.PrescribedMedicinesToResponses(prescriptions), total, nil
}

func (u *prescribedMedicineUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PrescribedMedicineResponse, error) {
	prescription, err := u.find(u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.PrescribedMedicineToResponse(prescription), nil
}

func (u *prescribedMedicineUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePrescribedMedicineRequest) (*dto.PrescribedMedicineResponse, error) {
	var prescription *entity.PrescribedMedicine
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		prescription, err = u.find(tx, id)
		if err != nil {
			return err
		}
		oldValue := converter.PrescribedMedicineToResponse(prescription)

		medicine, err := findMedicine(tx, u.log, u.medicineRepo, req.MedicineID)
		if err != nil {
			return err
		}

		prescription.MedicineID = medicine.ID
		prescription.Medicine = medicine
		prescription.Dosage = req.Dosage

		if err := u.prescribedMedicineRepo.Update(tx, prescription); err != nil {
			u.log.Warnf("Failed to update prescribed medicine: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionPrescriptionUpdate, "prescribed_medicine", id.String(), oldValue, converter.PrescribedMedicineToResponse(prescription))
	})
	if err != nil {
		return nil, err
	}

	return converter.PrescribedMedicineToResponse(prescription), nil
}

// Delete also removes the dispensing events recorded against the prescription.
func (u *prescribedMedicineUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		prescription, err := u.find(tx, id)
		if err != nil {
			return err
		}

		if _, err := u.prescribedMedicineRepo.Delete(tx, id); err != nil {
			u.log.Warnf("Failed to delete prescribed medicine: %+v", err)
			return err
		}

		return u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionPrescriptionDelete, "prescribed_medicine", id.String(), converter.PrescribedMedicineToResponse(prescription))
	})
}

func (u *prescribedMedicineUsecase) find(db *gorm.DB, id uuid.UUID) (*entity.PrescribedMedicine, error) {
	prescription, err := u.prescribedMedicineRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find prescribed medicine: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescribedMedicineNotFound
	}
	return prescription, nil
}

func findMedicine(db *gorm.DB, log *logrus.Logger, repo repository.MedicineRepository, id uuid.UUID) (*entity.Medicine, error) {
	medicine, err := repo.FindByID(db, id)
	if err != nil {
		log.Warnf("Failed to find medicine: %+v", err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}
	return medicine, nil
}

// resolveDefaultRecord maps deriver failures onto use case errors. A missing
// doctor is a validation error here, unlike at patient registration.
func resolveDefaultRecord(tx *gorm.DB, defaults service.DefaultRecordService, patientID uuid.UUID) (*entity.Record, error) {
	record, err := defaults.ResolveOrCreate(tx, patientID)
	switch {
	case err == nil:
		return record, nil
	case errors.Is(err, service.ErrPatientNotExists):
		return nil, ErrPatientNotFound
	case errors.Is(err, service.ErrNoDefaultDoctor):
		return nil, NewValidationError("patient", "no default doctor available")
	default:
		return nil, err
	}
}
