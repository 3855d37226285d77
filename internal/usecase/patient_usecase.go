package usecase

import (
	"context"
	"errors"

	"patients-management/internal/converter"
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
	"patients-management/internal/domain/repository"
	"patients-management/internal/service"
	"patients-management/pkg/money"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientUsecase interface {
	// Create registers a patient. When an identical patient exists it is
	// returned instead and existed is true.
	Create(ctx context.Context, req *dto.CreatePatientRequest) (patient *dto.PatientResponse, existed bool, err error)
	GetAll(ctx context.Context, query *dto.PatientListQuery) ([]dto.PatientResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetRecords(ctx context.Context, id uuid.UUID) ([]dto.RecordResponse, error)
	GetPrescribedMedicines(ctx context.Context, id uuid.UUID) (*dto.PatientPrescribedMedicinesResponse, error)
	GetGivenMedicines(ctx context.Context, id uuid.UUID) (*dto.PatientGivenMedicinesResponse, error)
	GetTotalPrice(ctx context.Context, id uuid.UUID) (*dto.TotalPriceResponse, error)
}

type patientUsecase struct {
	db                     repository.Transactor
	log                    *logrus.Logger
	patientRepo            repository.PatientRepository
	recordRepo             repository.RecordRepository
	prescribedMedicineRepo repository.PrescribedMedicineRepository
	givenMedicineRepo      repository.GivenMedicineRepository
	defaultRecords         service.DefaultRecordService
	billing                service.BillingService
	auditService           service.AuditService
}

func NewPatientUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	recordRepo repository.RecordRepository,
	prescribedMedicineRepo repository.PrescribedMedicineRepository,
	givenMedicineRepo repository.GivenMedicineRepository,
	defaultRecords service.DefaultRecordService,
	billing service.BillingService,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:                     db,
		log:                    log,
		patientRepo:            patientRepo,
		recordRepo:             recordRepo,
		prescribedMedicineRepo: prescribedMedicineRepo,
		givenMedicineRepo:      givenMedicineRepo,
		defaultRecords:         defaultRecords,
		billing:                billing,
		auditService:           auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, bool, error) {
	status := entity.PatientStatusActive
	if req.Status != "" {
		status = entity.PatientStatus(req.Status)
	}

	var (
		response *dto.PatientResponse
		existed  bool
	)
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		existing, err := u.patientRepo.FindDuplicate(tx, req.FullName, *req.Age, req.Gender)
		if err != nil {
			u.log.Warnf("Failed to find duplicate patient: %+v", err)
			return err
		}
		if existing != nil {
			existed = true
			response, err = u.withStats(tx, existing)
			return err
		}

		patient := &entity.Patient{
			FullName:     req.FullName,
			Age:          *req.Age,
			Gender:       req.Gender,
			Area:         req.Area,
			MobileNumber: req.MobileNumber,
			Status:       status,
			IsWaiting:    req.IsWaiting,
		}
		if err := u.patientRepo.Create(tx, patient); err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return err
		}

		// Without any doctor the patient simply starts with no default record.
		if _, err := u.defaultRecords.ResolveOrCreate(tx, patient.ID); err != nil && !errors.Is(err, service.ErrNoDefaultDoctor) {
			return err
		}

		response, err = u.withStats(tx, patient)
		if err != nil {
			return err
		}

		return u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionPatientCreate, "patient", patient.ID.String(), response)
	})
	if err != nil {
		return nil, false, err
	}

	return response, existed, nil
}

func (u *patientUsecase) GetAll(ctx context.Context, query *dto.PatientListQuery) ([]dto.PatientResponse, int64, error) {
	filter := &entity.PatientFilter{
		Search:     query.Search,
		Status:     entity.PatientStatus(query.Status),
		Area:       query.Area,
		IsWaiting:  query.IsWaiting,
		Pagination: query.Pagination(),
	}

	var (
		responses []dto.PatientResponse
		total     int64
	)
	err := u.db.WithinReadSnapshot(ctx, func(db *gorm.DB) error {
		patients, count, err := u.patientRepo.FindAll(db, filter)
		if err != nil {
			u.log.Warnf("Failed to find patients: %+v", err)
			return err
		}
		total = count

		ids := make([]uuid.UUID, 0, len(patients))
		for _, p := range patients {
			ids = append(ids, p.ID)
		}
		stats, err := u.recordRepo.StatsByPatientIDs(db, ids)
		if err != nil {
			u.log.Warnf("Failed to load patient record stats: %+v", err)
			return err
		}
		byPatient := make(map[uuid.UUID]*entity.PatientRecordStats, len(stats))
		for i := range stats {
			byPatient[stats[i].PatientID] = &stats[i]
		}

		responses = make([]dto.PatientResponse, 0, len(patients))
		for i := range patients {
			responses = append(responses, *converter.PatientToResponse(&patients[i], byPatient[patients[i].ID]))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	var response *dto.PatientResponse
	err := u.db.WithinReadSnapshot(ctx, func(db *gorm.DB) error {
		patient, err := u.find(db, id)
		if err != nil {
			return err
		}

		response, err = u.withStats(db, patient)
		if err != nil {
			return err
		}

		total, err := u.billing.TotalForPatient(db, id)
		if err != nil {
			return err
		}
		response.TotalMedicinePrice = money.Format(total)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (u *patientUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	var response *dto.PatientResponse
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.find(tx, id)
		if err != nil {
			return err
		}
		oldValue := converter.PatientToResponse(patient, nil)

		patient.FullName = req.FullName
		patient.Age = *req.Age
		patient.Gender = req.Gender
		patient.Area = req.Area
		patient.MobileNumber = req.MobileNumber
		patient.Status = entity.PatientStatus(req.Status)
		patient.IsWaiting = req.IsWaiting

		if err := u.patientRepo.Update(tx, patient); err != nil {
			u.log.Warnf("Failed to update patient: %+v", err)
			return err
		}

		response, err = u.withStats(tx, patient)
		if err != nil {
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionPatientUpdate, "patient", id.String(), oldValue, response)
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// Delete removes the patient together with every record, prescription and
// dispensing event that hangs off it.
func (u *patientUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.find(tx, id)
		if err != nil {
			return err
		}

		if _, err := u.patientRepo.Delete(tx, id); err != nil {
			u.log.Warnf("Failed to delete patient: %+v", err)
			return err
		}

		return u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionPatientDelete, "patient", id.String(), converter.PatientToResponse(patient, nil))
	})
}

func (u *patientUsecase) GetRecords(ctx context.Context, id uuid.UUID) ([]dto.RecordResponse, error) {
	var responses []dto.RecordResponse
	err := u.db.WithinReadSnapshot(ctx, func(db *gorm.DB) error {
		if _, err := u.find(db, id); err != nil {
			return err
		}

		records, _, err := u.recordRepo.FindAll(db, &entity.RecordFilter{PatientID: &id})
		if err != nil {
			u.log.Warnf("Failed to find patient records: %+v", err)
			return err
		}

		responses, err = recordsWithTotals(db, u.billing, records)
		return err
	})
	if err != nil {
		return nil, err
	}

	return responses, nil
}

func (u *patientUsecase) GetPrescribedMedicines(ctx context.Context, id uuid.UUID) (*dto.PatientPrescribedMedicinesResponse, error) {
	var response *dto.PatientPrescribedMedicinesResponse
	err := u.db.WithinReadSnapshot(ctx, func(db *gorm.DB) error {
		if _, err := u.find(db, id); err != nil {
			return err
		}

		prescriptions, _, err := u.prescribedMedicineRepo.FindAll(db, &entity.PrescribedMedicineFilter{PatientID: &id})
		if err != nil {
			u.log.Warnf("Failed to find patient prescriptions: %+v", err)
			return err
		}

		total, err := u.billing.TotalForPatient(db, id)
		if err != nil {
			return err
		}

		response = &dto.PatientPrescribedMedicinesResponse{
			PrescribedMedicines: converter.PrescribedMedicinesToResponses(prescriptions),
			TotalPrice:          money.Format(total),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (u *patientUsecase) GetGivenMedicines(ctx context.Context, id uuid.UUID) (*dto.PatientGivenMedicinesResponse, error) {
	var response *dto.PatientGivenMedicinesResponse
	err := u.db.WithinReadSnapshot(ctx, func(db *gorm.DB) error {
		if _, err := u.find(db, id); err != nil {
			return err
		}

		given, _, err := u.givenMedicineRepo.FindAll(db, &entity.GivenMedicineFilter{PatientID: &id})
		if err != nil {
			u.log.Warnf("Failed to find patient given medicines: %+v", err)
			return err
		}

		total, err := u.billing.TotalForPatient(db, id)
		if err != nil {
			return err
		}

		response = &dto.PatientGivenMedicinesResponse{
			GivenMedicines: converter.GivenMedicinesToResponses(given),
			TotalPrice:     money.Format(total),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (u *patientUsecase) GetTotalPrice(ctx context.Context, id uuid.UUID) (*dto.TotalPriceResponse, error) {
	db := u.db.Conn(ctx)
	if _, err := u.find(db, id); err != nil {
		return nil, err
	}

	total, err := u.billing.TotalForPatient(db, id)
	if err != nil {
		return nil, err
	}

	return &dto.TotalPriceResponse{TotalPrice: money.Format(total)}, nil
}

func (u *patientUsecase) find(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func (u *patientUsecase) withStats(db *gorm.DB, patient *entity.Patient) (*dto.PatientResponse, error) {
	stats, err := u.recordRepo.StatsByPatientIDs(db, []uuid.UUID{patient.ID})
	if err != nil {
		u.log.Warnf("Failed to load patient record stats: %+v", err)
		return nil, err
	}

	var own *entity.PatientRecordStats
	if len(stats) > 0 {
		own = &stats[0]
	}
	return converter.PatientToResponse(patient, own), nil
}

// recordsWithTotals converts records, attaching each record's dispensed total.
// All totals come from one grouped query.
func recordsWithTotals(db *gorm.DB, billing service.BillingService, records []entity.Record) ([]dto.RecordResponse, error) {
	ids := make([]uuid.UUID, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}

	totals, err := billing.TotalsForRecords(db, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *converter.RecordToResponse(&records[i], totals[records[i].ID]))
	}
	return responses, nil
}
