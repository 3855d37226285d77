package usecase

import (
	"context"
	"errors"
	"testing"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"

	"github.com/google/uuid"
)

func TestRecordListTotalsComeFromOneAggregate(t *testing.T) {
	doctor := &entity.Doctor{ID: uuid.New(), Name: "Dr. Khan", Specialization: "GP"}
	c := newClinic(doctor)
	patient := c.addPatient("Jane Roe")
	ctx := context.Background()

	var created []*dto.RecordResponse
	for i := 0; i < 3; i++ {
		rec, err := c.recordUsecase.Create(ctx, &dto.CreateRecordRequest{PatientID: patient.ID, DoctorID: doctor.ID})
		if err != nil {
			t.Fatalf("Create record: %v", err)
		}
		created = append(created, rec)
	}

	prescription := c.prescribe(created[0].ID)
	for _, quantity := range []int{2, 3} {
		if _, err := c.givenMedicineUsecase.Create(ctx, &dto.CreateGivenMedicineRequest{
			PatientID:            patient.ID,
			PrescribedMedicineID: uuidPtr(prescription.ID),
			Quantity:             quantity,
		}); err != nil {
			t.Fatalf("dispense: %v", err)
		}
	}

	c.given.aggregates = 0
	records, total, err := c.recordUsecase.GetAll(ctx, &dto.RecordListQuery{})
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if total != 3 || len(records) != 3 {
		t.Fatalf("records = %d (total %d), want 3", len(records), total)
	}
	if c.given.aggregates != 1 {
		t.Errorf("aggregate queries = %d, want 1 for the whole page", c.given.aggregates)
	}

	want := map[uuid.UUID]string{created[0].ID: "42.50", created[1].ID: "0.00", created[2].ID: "0.00"}
	for _, rec := range records {
		if rec.TotalMedicinePrice != want[rec.ID] {
			t.Errorf("record %s total = %s, want %s", rec.ID, rec.TotalMedicinePrice, want[rec.ID])
		}
		if rec.DoctorName != "Dr. Khan" {
			t.Errorf("doctor_name = %q", rec.DoctorName)
		}
	}
}

func TestRecordReadsRunInOneSnapshot(t *testing.T) {
	doctor := &entity.Doctor{ID: uuid.New()}
	c := newClinic(doctor)
	patient := c.addPatient("Jane Roe")
	ctx := context.Background()

	rec, err := c.recordUsecase.Create(ctx, &dto.CreateRecordRequest{PatientID: patient.ID, DoctorID: doctor.ID})
	if err != nil {
		t.Fatalf("Create record: %v", err)
	}
	c.given.handles = nil

	got, err := c.recordUsecase.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.TotalMedicinePrice != "0.00" {
		t.Errorf("total = %s, want 0.00", got.TotalMedicinePrice)
	}
	if _, err := c.recordUsecase.GetTotalPrice(ctx, rec.ID); err != nil {
		t.Fatalf("GetTotalPrice: %v", err)
	}

	if len(c.given.handles) != 2 {
		t.Fatalf("aggregate reads = %d, want 2", len(c.given.handles))
	}
	for i, h := range c.given.handles {
		if h != snapshotDB {
			t.Errorf("read %d ran outside the read snapshot", i)
		}
	}
}

func TestRecordCreateErrors(t *testing.T) {
	doctor := &entity.Doctor{ID: uuid.New()}
	c := newClinic(doctor)
	patient := c.addPatient("Jane Roe")

	tests := []struct {
		name  string
		req   dto.CreateRecordRequest
		check func(error) bool
	}{
		{
			name:  "unknown patient",
			req:   dto.CreateRecordRequest{PatientID: uuid.New(), DoctorID: doctor.ID},
			check: func(err error) bool { return errors.Is(err, ErrPatientNotFound) },
		},
		{
			name:  "unknown doctor",
			req:   dto.CreateRecordRequest{PatientID: patient.ID, DoctorID: uuid.New()},
			check: func(err error) bool { return errors.Is(err, ErrDoctorNotFound) },
		},
		{
			name: "malformed issued date",
			req:  dto.CreateRecordRequest{PatientID: patient.ID, DoctorID: doctor.ID, IssuedDate: "15/04/2025"},
			check: func(err error) bool {
				verr, ok := AsValidationError(err)
				return ok && verr.Fields["issued_date"] != ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.recordUsecase.Create(context.Background(), &tt.req)
			if !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	if n := len(c.records.records); n != 0 {
		t.Errorf("records created = %d, want 0", n)
	}
}

func TestRecordCreateDefaultsIssuedDateToToday(t *testing.T) {
	doctor := &entity.Doctor{ID: uuid.New()}
	c := newClinic(doctor)
	patient := c.addPatient("Jane Roe")

	rec, err := c.recordUsecase.Create(context.Background(), &dto.CreateRecordRequest{PatientID: patient.ID, DoctorID: doctor.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.IssuedDate != "2025-04-15" {
		t.Errorf("issued_date = %s, want 2025-04-15", rec.IssuedDate)
	}
	if rec.IsDefault {
		t.Error("a created record must not be the default record")
	}
	if len(c.audit.logs) != 1 || c.audit.logs[0].Action != entity.AuditActionRecordCreate {
		t.Errorf("audit = %+v, want one record.create entry", c.audit.logs)
	}
}

func TestRecordUpdateAndDelete(t *testing.T) {
	first := &entity.Doctor{ID: uuid.New(), Name: "Dr. Khan"}
	second := &entity.Doctor{ID: uuid.New(), Name: "Dr. Osei", Specialization: "Cardiology"}
	c := newClinic(first, second)
	patient := c.addPatient("Jane Roe")
	ctx := context.Background()

	rec, err := c.recordUsecase.Create(ctx, &dto.CreateRecordRequest{PatientID: patient.ID, DoctorID: first.ID})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := c.recordUsecase.Update(ctx, rec.ID, &dto.UpdateRecordRequest{
		DoctorID:   second.ID,
		VitalSigns: "BP 120/80",
		IssuedDate: "2025-04-10",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DoctorName != "Dr. Osei" || updated.IssuedDate != "2025-04-10" || updated.VitalSigns != "BP 120/80" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := c.recordUsecase.Update(ctx, rec.ID, &dto.UpdateRecordRequest{DoctorID: uuid.New(), IssuedDate: "2025-04-10"}); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("Update with unknown doctor err = %v, want ErrDoctorNotFound", err)
	}

	if err := c.recordUsecase.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.recordUsecase.GetByID(ctx, rec.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("GetByID after delete err = %v, want ErrRecordNotFound", err)
	}
	if err := c.recordUsecase.Delete(ctx, rec.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second Delete err = %v, want ErrRecordNotFound", err)
	}
}
