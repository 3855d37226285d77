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

var ErrGivenMedicineNotFound = errors.New("given medicine not found")

type GivenMedicineUsecase interface {
	Create(ctx context.Context, req *dto.CreateGivenMedicineRequest) (*dto.GivenMedicineResponse, error)
	GetAll(ctx context.Context, query *dto.GivenMedicineListQuery) ([]dto.GivenMedicineResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.GivenMedicineResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateGivenMedicineRequest) (*dto.GivenMedicineResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type givenMedicineUsecase struct {
	db                     repository.Transactor
	log                    *logrus.Logger
	patientRepo            repository.PatientRepository
	medicineRepo           repository.MedicineRepository
	prescribedMedicineRepo repository.PrescribedMedicineRepository
	givenMedicineRepo      repository.GivenMedicineRepository
	defaultRecords         service.DefaultRecordService
	auditService           service.AuditService
}

func NewGivenMedicineUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	medicineRepo repository.MedicineRepository,
	prescribedMedicineRepo repository.PrescribedMedicineRepository,
	givenMedicineRepo repository.GivenMedicineRepository,
	defaultRecords service.DefaultRecordService,
	auditService service.AuditService,
) GivenMedicineUsecase {
	return &givenMedicineUsecase{
		db:                     db,
		log:                    log,
		patientRepo:            patientRepo,
		medicineRepo:           medicineRepo,
		prescribedMedicineRepo: prescribedMedicineRepo,
		givenMedicineRepo:      givenMedicineRepo,
		defaultRecords:         defaultRecords,
		auditService:           auditService,
	}
}

// Create dispenses against an existing prescription, or prescribes the
// medicine on the patient's default record first.
func (u *givenMedicineUsecase) Create(ctx context.Context, req *dto.CreateGivenMedicineRequest) (*dto.GivenMedicineResponse, error) {
	var given *entity.GivenMedicine
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(tx, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		var prescription *entity.PrescribedMedicine
		if req.PrescribedMedicineID != nil {
			prescription, err = u.prescribedMedicineRepo.FindByID(tx, *req.PrescribedMedicineID)
			if err != nil {
				u.log.Warnf("Failed to find prescribed medicine: %+v", err)
				return err
			}
			if prescription == nil {
				return ErrPrescribedMedicineNotFound
			}
		} else {
			prescription, err = u.prescribeOnDefaultRecord(ctx, tx, patient.ID, *req.MedicineID, req.Dosage)
			if err != nil {
				return err
			}
		}

		given = &entity.GivenMedicine{
			PatientID:            patient.ID,
			PrescribedMedicineID: prescription.ID,
			Quantity:             req.Quantity,
		}
		if err := u.givenMedicineRepo.Create(tx, given); err != nil {
			u.log.Warnf("Failed to create given medicine: %+v", err)
			return err
		}
		given.PrescribedMedicine = prescription

		return u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionDispenseCreate, "given_medicine", given.ID.String(), converter.GivenMedicineToResponse(given))
	})
	if err != nil {
		return nil, err
	}

	return converter.GivenMedicineToResponse(given), nil
}

func (u *givenMedicineUsecase) prescribeOnDefaultRecord(ctx context.Context, tx *gorm.DB, patientID, medicineID uuid.UUID, dosage string) (*entity.PrescribedMedicine, error) {
	medicine, err := findMedicine(tx, u.log, u.medicineRepo, medicineID)
	if err != nil {
		return nil, err
	}

	record, err := resolveDefaultRecord(tx, u.defaultRecords, patientID)
	if err != nil {
		return nil, err
	}

	prescription := &entity.PrescribedMedicine{
		RecordID:   record.ID,
		MedicineID: medicine.ID,
		Dosage:     dosage,
	}
	if err := u.prescribedMedicineRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescribed medicine: %+v", err)
		return nil, err
	}
	prescription.Medicine = medicine

	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionPrescriptionCreate, "prescribed_medicine", prescription.ID.String(), converter.PrescribedMedicineToResponse(prescription)); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (u *givenMedicineUsecase) GetAll(ctx context.Context, query *dto.GivenMedicineListQuery) ([]dto.GivenMedicineResponse, int64, error) {
	given, total, err := u.givenMedicineRepo.FindAll(u.db.Conn(ctx), &entity.GivenMedicineFilter{
		PatientID:            query.PatientID,
		PrescribedMedicineID: query.PrescribedMedicineID,
		Pagination:           query.Pagination(),
	})
	if err != nil {
		u.log.Warnf("Failed to find given medicines: %+v", err)
		return nil, 0, err
	}

	return converter.GivenMedicinesToResponses(given), total, nil
}

func (u *givenMedicineUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.GivenMedicineResponse, error) {
	given, err := u.find(u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.GivenMedicineToResponse(given), nil
}

// Update corrects the dispensed quantity. Everything else is fixed.
func (u *givenMedicineUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateGivenMedicineRequest) (*dto.GivenMedicineResponse, error) {
	var given *entity.GivenMedicine
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		given, err = u.find(tx, id)
		if err != nil {
			return err
		}
		oldValue := converter.GivenMedicineToResponse(given)

		given.Quantity = req.Quantity
		if err := u.givenMedicineRepo.Update(tx, given); err != nil {
			u.log.Warnf("Failed to update given medicine: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionDispenseUpdate, "given_medicine", id.String(), oldValue, converter.GivenMedicineToResponse(given))
	})
	if err != nil {
		return nil, err
	}

	return converter.GivenMedicineToResponse(given), nil
}

func (u *givenMedicineUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		given, err := u.find(tx, id)
		if err != nil {
			return err
		}

		if _, err := u.givenMedicineRepo.Delete(tx, id); err != nil {
			u.log.Warnf("Failed to delete given medicine: %+v", err)
			return err
		}

		return u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionDispenseDelete, "given_medicine", id.String(), converter.GivenMedicineToResponse(given))
	})
}

func (u *givenMedicineUsecase) find(db *gorm.DB, id uuid.UUID) (*entity.GivenMedicine, error) {
	given, err := u.givenMedicineRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find given medicine: %+v", err)
		return nil, err
	}
	if given == nil {
		return nil, ErrGivenMedicineNotFound
	}
	return given, nil
}
