package service

import (
	"errors"
	"time"

	"patients-management/internal/domain/entity"
	"patients-management/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNoDefaultDoctor  = errors.New("no default doctor available")
	ErrPatientNotExists = errors.New("patient does not exist")
)

// DefaultRecordService resolves the one default record of a patient, creating
// it on first use. Callers must pass a transaction handle: the patient row is
// locked until that transaction ends so concurrent callers serialise.
type DefaultRecordService interface {
	ResolveOrCreate(tx *gorm.DB, patientID uuid.UUID) (*entity.Record, error)
}

type defaultRecordService struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	recordRepo  repository.RecordRepository
	now         func() time.Time
}

func NewDefaultRecordService(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	recordRepo repository.RecordRepository,
	now func() time.Time,
) DefaultRecordService {
	if now == nil {
		now = time.Now
	}
	return &defaultRecordService{
		log:         log,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		recordRepo:  recordRepo,
		now:         now,
	}
}

func (s *defaultRecordService) ResolveOrCreate(tx *gorm.DB, patientID uuid.UUID) (*entity.Record, error) {
	patient, err := s.patientRepo.LockByID(tx, patientID)
	if err != nil {
		s.log.Warnf("Failed to lock patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotExists
	}

	record, err := s.recordRepo.FindDefaultByPatientID(tx, patientID)
	if err != nil {
		s.log.Warnf("Failed to find default record: %+v", err)
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	doctor, err := s.doctorRepo.FindFirst(tx)
	if err != nil {
		s.log.Warnf("Failed to find default doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrNoDefaultDoctor
	}

	record = entity.NewDefaultRecord(patientID, doctor.ID, s.now())
	if err := s.recordRepo.Create(tx, record); err != nil {
		s.log.Warnf("Failed to create default record: %+v", err)
		return nil, err
	}
	record.Doctor = doctor

	return record, nil
}
