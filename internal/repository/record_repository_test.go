package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"patients-management/internal/domain/entity"
	"patients-management/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func TestResolveOrCreateConcurrentCallersShareOneDefaultRecord(t *testing.T) {
	db := requireDB(t)
	s := seed{t: t, db: db}
	s.doctor("Dr. Khan", "GP")
	patient := s.patient("Jane Roe", "X")

	log := logrus.New()
	log.SetOutput(io.Discard)
	defaults := service.NewDefaultRecordService(log, NewPatientRepository(), NewDoctorRepository(), NewRecordRepository(), nil)
	transactor := NewTransactor(db)

	const callers = 2
	resolved := make([]*entity.Record, callers)
	start := make(chan struct{})

	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < callers; i++ {
		i := i
		g.Go(func() error {
			<-start
			return transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
				record, err := defaults.ResolveOrCreate(tx, patient.ID)
				if err != nil {
					return err
				}
				// Hold the lock long enough for the other caller to queue behind it.
				time.Sleep(50 * time.Millisecond)
				resolved[i] = record
				return nil
			})
		})
	}
	close(start)
	if err := g.Wait(); err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}

	if resolved[0].ID != resolved[1].ID {
		t.Errorf("callers resolved different records: %s and %s", resolved[0].ID, resolved[1].ID)
	}
	if n := countRows(t, db, "records", "patient_id = ? AND is_default", patient.ID); n != 1 {
		t.Errorf("default records = %d, want 1", n)
	}
}

func TestSecondDefaultRecordIsRejected(t *testing.T) {
	db := requireDB(t)
	s := seed{t: t, db: db}
	doctor := s.doctor("Dr. Khan", "GP")
	patient := s.patient("Jane Roe", "X")
	repo := NewRecordRepository()

	if err := repo.Create(db, entity.NewDefaultRecord(patient.ID, doctor.ID, time.Now())); err != nil {
		t.Fatalf("first default record: %v", err)
	}

	err := repo.Create(db, entity.NewDefaultRecord(patient.ID, doctor.ID, time.Now()))
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" || pgErr.ConstraintName != "uq_records_default_per_patient" {
		t.Fatalf("second default record err = %v, want unique violation on uq_records_default_per_patient", err)
	}

	// Ordinary records are unrestricted.
	s.record(patient, doctor)
	s.record(patient, doctor)
	if n := countRows(t, db, "records", "patient_id = ?", patient.ID); n != 3 {
		t.Errorf("records = %d, want 3", n)
	}
}

func TestRecordDeleteRemovesPrescriptionsAndDispensing(t *testing.T) {
	db := requireDB(t)
	s := seed{t: t, db: db}
	doctor := s.doctor("Dr. Khan", "GP")
	patient := s.patient("Jane Roe", "X")
	amoxicillin := s.medicine("Amoxicillin", "250mg", "8.50")

	doomed := s.record(patient, doctor)
	kept := s.record(patient, doctor)
	s.dispense(patient, s.prescription(doomed, amoxicillin), 2, time.Now())
	s.dispense(patient, s.prescription(kept, amoxicillin), 1, time.Now())

	deleted, err := NewRecordRepository().Delete(db, doomed.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if n := countRows(t, db, "prescribed_medicines", "record_id = ?", doomed.ID); n != 0 {
		t.Errorf("orphan prescriptions = %d", n)
	}
	if n := countRows(t, db, "given_medicines", "prescribed_medicine_id NOT IN (SELECT id FROM prescribed_medicines)"); n != 0 {
		t.Errorf("orphan dispensing events = %d", n)
	}
	if n := countRows(t, db, "given_medicines", "patient_id = ?", patient.ID); n != 1 {
		t.Errorf("dispensing events left = %d, want 1 on the kept record", n)
	}
}

func TestRecordSearch(t *testing.T) {
	db := requireDB(t)
	s := seed{t: t, db: db}
	gp := s.doctor("Dr. Khan", "General_Practice")
	cardio := s.doctor("Dr. Osei", "GeneralXPractice")
	jane := s.patient("Jane Roe", "X")
	john := s.patient("John Doe", "X")
	s.record(jane, gp)
	s.record(john, cardio)

	tests := []struct {
		name   string
		filter entity.RecordFilter
		want   int
	}{
		{name: "patient name", filter: entity.RecordFilter{Search: "jane"}, want: 1},
		{name: "doctor name", filter: entity.RecordFilter{Search: "OSEI"}, want: 1},
		{name: "underscore matches literally", filter: entity.RecordFilter{Search: "general_"}, want: 1},
		{name: "specialization filter is exact and case-insensitive", filter: entity.RecordFilter{DoctorSpecialization: "general_practice"}, want: 1},
		{name: "patient filter", filter: entity.RecordFilter{PatientID: &john.ID}, want: 1},
		{name: "no filter", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, total, err := NewRecordRepository().FindAll(db, &tt.filter)
			if err != nil {
				t.Fatalf("FindAll: %v", err)
			}
			if int(total) != tt.want || len(records) != tt.want {
				t.Errorf("got %d records (total %d), want %d", len(records), total, tt.want)
			}
			for _, r := range records {
				if r.Doctor == nil {
					t.Errorf("record %s has no preloaded doctor", r.ID)
				}
			}
		})
	}
}
