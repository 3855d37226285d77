package service

import (
	"errors"
	"io"

	"patients-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
	locks    int
}

func (r *fakePatientRepo) Create(db *gorm.DB, p *entity.Patient) error {
	p.ID = uuid.New()
	r.patients[p.ID] = p
	return nil
}
func (r *fakePatientRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return r.patients[id], nil
}
func (r *fakePatientRepo) LockByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	r.locks++
	return r.patients[id], nil
}
func (r *fakePatientRepo) FindDuplicate(db *gorm.DB, fullName string, age int, gender string) (*entity.Patient, error) {
	return nil, nil
}
func (r *fakePatientRepo) FindAll(db *gorm.DB, f *entity.PatientFilter) ([]entity.Patient, int64, error) {
	return nil, 0, nil
}
func (r *fakePatientRepo) Update(db *gorm.DB, p *entity.Patient) error { return nil }
func (r *fakePatientRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeDoctorRepo struct {
	first *entity.Doctor
	err   error
}

func (r *fakeDoctorRepo) Create(db *gorm.DB, d *entity.Doctor) error { return nil }
func (r *fakeDoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return nil, nil
}
func (r *fakeDoctorRepo) FindByUserID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return nil, nil
}
func (r *fakeDoctorRepo) FindFirst(db *gorm.DB) (*entity.Doctor, error) { return r.first, r.err }
func (r *fakeDoctorRepo) FindAll(db *gorm.DB, f *entity.DoctorFilter) ([]entity.Doctor, int64, error) {
	return nil, 0, nil
}
func (r *fakeDoctorRepo) Update(db *gorm.DB, d *entity.Doctor) error { return nil }
func (r *fakeDoctorRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeRecordRepo struct {
	records []*entity.Record
}

func (r *fakeRecordRepo) Create(db *gorm.DB, rec *entity.Record) error {
	rec.ID = uuid.New()
	r.records = append(r.records, rec)
	return nil
}
func (r *fakeRecordRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Record, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}
func (r *fakeRecordRepo) FindDefaultByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.Record, error) {
	for _, rec := range r.records {
		if rec.PatientID == patientID && rec.IsDefault {
			return rec, nil
		}
	}
	return nil, nil
}
func (r *fakeRecordRepo) FindAll(db *gorm.DB, f *entity.RecordFilter) ([]entity.Record, int64, error) {
	return nil, 0, nil
}
func (r *fakeRecordRepo) CountByDoctorID(db *gorm.DB, id uuid.UUID) (int64, error) { return 0, nil }
func (r *fakeRecordRepo) StatsByPatientIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.PatientRecordStats, error) {
	return nil, nil
}
func (r *fakeRecordRepo) Update(db *gorm.DB, rec *entity.Record) error { return nil }
func (r *fakeRecordRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

// fakeGivenMedicineRepo evaluates SumTotal in memory over its rows.
type fakeGivenMedicineRepo struct {
	rows   []entity.GivenMedicine
	scopes []entity.BillingScope
	err    error
}

func (r *fakeGivenMedicineRepo) Create(db *gorm.DB, g *entity.GivenMedicine) error { return nil }
func (r *fakeGivenMedicineRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.GivenMedicine, error) {
	return nil, nil
}
func (r *fakeGivenMedicineRepo) FindAll(db *gorm.DB, f *entity.GivenMedicineFilter) ([]entity.GivenMedicine, int64, error) {
	return nil, 0, nil
}
func (r *fakeGivenMedicineRepo) Update(db *gorm.DB, g *entity.GivenMedicine) error { return nil }
func (r *fakeGivenMedicineRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *fakeGivenMedicineRepo) SumTotal(db *gorm.DB, scope entity.BillingScope) (decimal.Decimal, error) {
	r.scopes = append(r.scopes, scope)
	if r.err != nil {
		return decimal.Zero, r.err
	}
	total := decimal.Zero
	for i := range r.rows {
		g := &r.rows[i]
		if scope.PatientID != nil && g.PatientID != *scope.PatientID {
			continue
		}
		if scope.RecordID != nil && (g.PrescribedMedicine == nil || g.PrescribedMedicine.RecordID != *scope.RecordID) {
			continue
		}
		total = total.Add(g.TotalPrice())
	}
	return total, nil
}
func (r *fakeGivenMedicineRepo) SumTotalsByRecordIDs(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	if r.err != nil {
		return nil, r.err
	}
	totals := map[uuid.UUID]decimal.Decimal{}
	for _, id := range ids {
		for i := range r.rows {
			g := &r.rows[i]
			if g.PrescribedMedicine != nil && g.PrescribedMedicine.RecordID == id {
				totals[id] = totals[id].Add(g.TotalPrice())
			}
		}
	}
	return totals, nil
}
func (r *fakeGivenMedicineRepo) UsageReport(db *gorm.DB, f *entity.UsageReportFilter) ([]entity.MedicineUsage, error) {
	return nil, errors.New("not implemented")
}
