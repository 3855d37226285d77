package service

import (
	"patients-management/internal/domain/entity"
	"patients-management/internal/domain/repository"
	"patients-management/pkg/money"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BillingService totals dispensed medicine. Each total is one aggregate query,
// and dispensing rows with a broken chain or bad numbers count as zero.
type BillingService interface {
	TotalForRecord(db *gorm.DB, recordID uuid.UUID) (decimal.Decimal, error)
	TotalForPatient(db *gorm.DB, patientID uuid.UUID) (decimal.Decimal, error)
	TotalForAllPatients(db *gorm.DB) (decimal.Decimal, error)
	// TotalsForRecords totals many records at once. Every requested id is
	// present in the result, records without dispensing at zero.
	TotalsForRecords(db *gorm.DB, recordIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}

type billingService struct {
	log               *logrus.Logger
	givenMedicineRepo repository.GivenMedicineRepository
}

func NewBillingService(log *logrus.Logger, givenMedicineRepo repository.GivenMedicineRepository) BillingService {
	return &billingService{
		log:               log,
		givenMedicineRepo: givenMedicineRepo,
	}
}

func (s *billingService) TotalForRecord(db *gorm.DB, recordID uuid.UUID) (decimal.Decimal, error) {
	return s.sum(db, entity.BillingScope{RecordID: &recordID})
}

func (s *billingService) TotalForPatient(db *gorm.DB, patientID uuid.UUID) (decimal.Decimal, error) {
	return s.sum(db, entity.BillingScope{PatientID: &patientID})
}

func (s *billingService) TotalForAllPatients(db *gorm.DB) (decimal.Decimal, error) {
	return s.sum(db, entity.BillingScope{})
}

func (s *billingService) TotalsForRecords(db *gorm.DB, recordIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	totals, err := s.givenMedicineRepo.SumTotalsByRecordIDs(db, recordIDs)
	if err != nil {
		s.log.Warnf("Failed to sum record totals: %+v", err)
		return nil, err
	}
	for _, id := range recordIDs {
		if _, ok := totals[id]; !ok {
			totals[id] = money.Zero
		}
	}
	return totals, nil
}

func (s *billingService) sum(db *gorm.DB, scope entity.BillingScope) (decimal.Decimal, error) {
	total, err := s.givenMedicineRepo.SumTotal(db, scope)
	if err != nil {
		s.log.Warnf("Failed to sum medicine totals: %+v", err)
		return decimal.Zero, err
	}
	return total, nil
}
