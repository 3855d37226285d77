package repository

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"patients-management/config"
	"patients-management/internal/domain/entity"
	"patients-management/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// testDB is the migrated database shared by the package, nil when no
// container could be started.
var testDB *gorm.DB

var skipReason string

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		skipReason = "skipping database tests in short mode"
		os.Exit(m.Run())
	}

	db, cleanup, err := setupDatabase(context.Background())
	if err != nil {
		skipReason = fmt.Sprintf("postgres unavailable: %v", err)
		os.Exit(m.Run())
	}

	testDB = db
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupDatabase(ctx context.Context) (*gorm.DB, func(), error) {
	cfg, cleanup, err := startPostgres(ctx)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	migrator, err := database.NewMigrator(cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	err = migrator.Up()
	migrator.Close()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	db, err := database.NewPostgresConnection(cfg, config.AppConfig{Env: "test", Timezone: "UTC"})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		cleanup()
	}, nil
}

// requireDB returns a freshly truncated database or skips the test.
func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testDB == nil {
		t.Skip(skipReason)
	}
	err := testDB.Exec("TRUNCATE given_medicines, prescribed_medicines, records, medicines, patients, doctors, audit_logs, users RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return testDB
}

// seed inserts rows through the repositories under test.
type seed struct {
	t  *testing.T
	db *gorm.DB
}

func (s seed) doctor(name, specialization string) *entity.Doctor {
	s.t.Helper()
	user := &entity.User{Username: "dr-" + uuid.NewString()[:8], Password: "x", Role: entity.RoleDoctor}
	if err := NewUserRepository().Create(s.db, user); err != nil {
		s.t.Fatalf("create user: %v", err)
	}
	doctor := &entity.Doctor{UserID: user.ID, Name: name, Specialization: specialization}
	if err := NewDoctorRepository().Create(s.db, doctor); err != nil {
		s.t.Fatalf("create doctor: %v", err)
	}
	return doctor
}

func (s seed) patient(name, area string) *entity.Patient {
	s.t.Helper()
	patient := &entity.Patient{FullName: name, Age: 30, Gender: "female", Area: area, Status: entity.PatientStatusActive}
	if err := NewPatientRepository().Create(s.db, patient); err != nil {
		s.t.Fatalf("create patient: %v", err)
	}
	return patient
}

func (s seed) medicine(name, dose, price string) *entity.Medicine {
	s.t.Helper()
	medicine := &entity.Medicine{Name: name, Dose: dose, Price: decimal.RequireFromString(price)}
	if err := NewMedicineRepository().Create(s.db, medicine); err != nil {
		s.t.Fatalf("create medicine: %v", err)
	}
	return medicine
}

func (s seed) record(patient *entity.Patient, doctor *entity.Doctor) *entity.Record {
	s.t.Helper()
	record := &entity.Record{PatientID: patient.ID, DoctorID: doctor.ID, IssuedDate: datatypes.Date(entity.DateOnly(time.Now().UTC()))}
	if err := NewRecordRepository().Create(s.db, record); err != nil {
		s.t.Fatalf("create record: %v", err)
	}
	return record
}

func (s seed) prescription(record *entity.Record, medicine *entity.Medicine) *entity.PrescribedMedicine {
	s.t.Helper()
	prescription := &entity.PrescribedMedicine{RecordID: record.ID, MedicineID: medicine.ID}
	if err := NewPrescribedMedicineRepository().Create(s.db, prescription); err != nil {
		s.t.Fatalf("create prescription: %v", err)
	}
	return prescription
}

func (s seed) dispense(patient *entity.Patient, prescription *entity.PrescribedMedicine, quantity int, at time.Time) *entity.GivenMedicine {
	s.t.Helper()
	given := &entity.GivenMedicine{PatientID: patient.ID, PrescribedMedicineID: prescription.ID, Quantity: quantity, GivenAt: at}
	if err := NewGivenMedicineRepository().Create(s.db, given); err != nil {
		s.t.Fatalf("create given medicine: %v", err)
	}
	return given
}

func countRows(t *testing.T, db *gorm.DB, table, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
