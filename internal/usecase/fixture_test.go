package usecase

import (
	"time"

	"patients-management/internal/domain/entity"
	"patients-management/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)

// clinic wires the clinical use cases over shared in-memory repositories.
type clinic struct {
	patients      *fakePatientRepo
	doctors       *fakeDoctorRepo
	records       *fakeRecordRepo
	medicines     *fakeMedicineRepo
	prescriptions *fakePrescribedMedicineRepo
	given         *fakeGivenMedicineRepo
	audit         *fakeAuditLogRepo

	patientUsecase            PatientUsecase
	recordUsecase             RecordUsecase
	medicineUsecase           MedicineUsecase
	prescribedMedicineUsecase PrescribedMedicineUsecase
	givenMedicineUsecase      GivenMedicineUsecase

	amoxicillin *entity.Medicine
}

func newClinic(doctors ...*entity.Doctor) *clinic {
	log := quietLogger()
	amoxicillin := &entity.Medicine{ID: uuid.New(), Name: "Amoxicillin", Dose: "250mg", Price: decimal.RequireFromString("8.50")}

	c := &clinic{
		patients:      newFakePatientRepo(),
		doctors:       &fakeDoctorRepo{doctors: doctors},
		records:       &fakeRecordRepo{},
		medicines:     newFakeMedicineRepo(amoxicillin),
		prescriptions: &fakePrescribedMedicineRepo{},
		given:         &fakeGivenMedicineRepo{},
		audit:         &fakeAuditLogRepo{},
		amoxicillin:   amoxicillin,
	}

	now := func() time.Time { return fixedNow }
	auditService := service.NewAuditService(log, c.audit)
	defaults := service.NewDefaultRecordService(log, c.patients, c.doctors, c.records, now)
	billing := service.NewBillingService(log, c.given)

	c.patientUsecase = NewPatientUsecase(fakeTransactor{}, log, c.patients, c.records, c.prescriptions, c.given, defaults, billing, auditService)
	c.recordUsecase = NewRecordUsecase(fakeTransactor{}, log, c.patients, c.doctors, c.records, billing, auditService, now)
	c.medicineUsecase = NewMedicineUsecase(fakeTransactor{}, log, c.medicines, auditService)
	c.prescribedMedicineUsecase = NewPrescribedMedicineUsecase(fakeTransactor{}, log, c.records, c.medicines, c.prescriptions, defaults, auditService)
	c.givenMedicineUsecase = NewGivenMedicineUsecase(fakeTransactor{}, log, c.patients, c.medicines, c.prescriptions, c.given, defaults, auditService)
	return c
}

func (c *clinic) addPatient(name string) *entity.Patient {
	p := &entity.Patient{ID: uuid.New(), FullName: name, Age: 30, Gender: "female", Area: "X", Status: entity.PatientStatusActive}
	c.patients.patients[p.ID] = p
	return p
}

func (c *clinic) defaultRecords(patientID uuid.UUID) []*entity.Record {
	var out []*entity.Record
	for _, r := range c.records.records {
		if r.PatientID == patientID && r.IsDefault {
			out = append(out, r)
		}
	}
	return out
}

// prescribe attaches an amoxicillin prescription to a record.
func (c *clinic) prescribe(recordID uuid.UUID) *entity.PrescribedMedicine {
	p := &entity.PrescribedMedicine{RecordID: recordID, MedicineID: c.amoxicillin.ID, Medicine: c.amoxicillin}
	_ = c.prescriptions.Create(nil, p)
	return p
}

func intPtr(i int) *int { return &i }

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }
