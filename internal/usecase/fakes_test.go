package usecase

import (
	"context"
	"io"
	"time"

	"patients-management/internal/domain/entity"
	"patients-management/pkg/jwt"
	"patients-management/pkg/money"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// snapshotDB is the handle fakeTransactor passes to read snapshots, so tests
// can tell which reads ran inside one.
var snapshotDB = &gorm.DB{}

// fakeTransactor runs the callback inline. The fake repositories ignore the handle.
type fakeTransactor struct{}

func (fakeTransactor) Conn(ctx context.Context) *gorm.DB { return nil }
func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
func (fakeTransactor) WithinReadSnapshot(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(snapshotDB)
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo(patients ...*entity.Patient) *fakePatientRepo {
	r := &fakePatientRepo{patients: map[uuid.UUID]*entity.Patient{}}
	for _, p := range patients {
		r.patients[p.ID] = p
	}
	return r
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
	return r.patients[id], nil
}
func (r *fakePatientRepo) FindDuplicate(db *gorm.DB, fullName string, age int, gender string) (*entity.Patient, error) {
	for _, p := range r.patients {
		if p.FullName == fullName && p.Age == age && p.Gender == gender {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePatientRepo) FindAll(db *gorm.DB, f *entity.PatientFilter) ([]entity.Patient, int64, error) {
	return nil, 0, nil
}
func (r *fakePatientRepo) Update(db *gorm.DB, p *entity.Patient) error { return nil }
func (r *fakePatientRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	delete(r.patients, id)
	return 1, nil
}

type fakeDoctorRepo struct {
	doctors []*entity.Doctor
}

func (r *fakeDoctorRepo) Create(db *gorm.DB, d *entity.Doctor) error {
	d.ID = uuid.New()
	r.doctors = append(r.doctors, d)
	return nil
}
func (r *fakeDoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	for _, d := range r.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}
func (r *fakeDoctorRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	for _, d := range r.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}
func (r *fakeDoctorRepo) FindFirst(db *gorm.DB) (*entity.Doctor, error) {
	if len(r.doctors) == 0 {
		return nil, nil
	}
	return r.doctors[0], nil
}
func (r *fakeDoctorRepo) FindAll(db *gorm.DB, f *entity.DoctorFilter) ([]entity.Doctor, int64, error) {
	return nil, 0, nil
}
func (r *fakeDoctorRepo) Update(db *gorm.DB, d *entity.Doctor) error { return nil }
func (r *fakeDoctorRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	for i, d := range r.doctors {
		if d.ID == id {
			r.doctors = append(r.doctors[:i], r.doctors[i+1:]...)
			return 1, nil
		}
	}
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
	var out []entity.Record
	for _, rec := range r.records {
		if f != nil && f.PatientID != nil && rec.PatientID != *f.PatientID {
			continue
		}
		if f != nil && f.DoctorID != nil && rec.DoctorID != *f.DoctorID {
			continue
		}
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}
func (r *fakeRecordRepo) CountByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.DoctorID == doctorID {
			n++
		}
	}
	return n, nil
}
func (r *fakeRecordRepo) StatsByPatientIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.PatientRecordStats, error) {
	var stats []entity.PatientRecordStats
	for _, id := range ids {
		var count int64
		for _, rec := range r.records {
			if rec.PatientID == id {
				count++
			}
		}
		if count > 0 {
			stats = append(stats, entity.PatientRecordStats{PatientID: id, RecordsCount: count})
		}
	}
	return stats, nil
}
func (r *fakeRecordRepo) Update(db *gorm.DB, rec *entity.Record) error { return nil }
func (r *fakeRecordRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeMedicineRepo refuses to delete medicines listed in prescribed, the way
// the prescribed_medicines foreign key does.
type fakeMedicineRepo struct {
	medicines  map[uuid.UUID]*entity.Medicine
	prescribed map[uuid.UUID]bool
}

func newFakeMedicineRepo(medicines ...*entity.Medicine) *fakeMedicineRepo {
	r := &fakeMedicineRepo{medicines: map[uuid.UUID]*entity.Medicine{}}
	for _, m := range medicines {
		r.medicines[m.ID] = m
	}
	return r
}

func (r *fakeMedicineRepo) Create(db *gorm.DB, m *entity.Medicine) error {
	m.ID = uuid.New()
	r.medicines[m.ID] = m
	return nil
}
func (r *fakeMedicineRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Medicine, error) {
	return r.medicines[id], nil
}
func (r *fakeMedicineRepo) FindAll(db *gorm.DB, f *entity.MedicineFilter) ([]entity.Medicine, int64, error) {
	var out []entity.Medicine
	for _, m := range r.medicines {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}
func (r *fakeMedicineRepo) Update(db *gorm.DB, m *entity.Medicine) error {
	r.medicines[m.ID] = m
	return nil
}
func (r *fakeMedicineRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if r.prescribed[id] {
		return 0, &pgconn.PgError{Code: "23503", ConstraintName: "prescribed_medicines_medicine_id_fkey"}
	}
	if _, ok := r.medicines[id]; !ok {
		return 0, nil
	}
	delete(r.medicines, id)
	return 1, nil
}

type fakePrescribedMedicineRepo struct {
	prescriptions []*entity.PrescribedMedicine
}

func (r *fakePrescribedMedicineRepo) Create(db *gorm.DB, p *entity.PrescribedMedicine) error {
	p.ID = uuid.New()
	r.prescriptions = append(r.prescriptions, p)
	return nil
}
func (r *fakePrescribedMedicineRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrescribedMedicine, error) {
	for _, p := range r.prescriptions {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePrescribedMedicineRepo) FindAll(db *gorm.DB, f *entity.PrescribedMedicineFilter) ([]entity.PrescribedMedicine, int64, error) {
	return nil, 0, nil
}
func (r *fakePrescribedMedicineRepo) Update(db *gorm.DB, p *entity.PrescribedMedicine) error {
	return nil
}
func (r *fakePrescribedMedicineRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

// fakeGivenMedicineRepo keeps dispensing events in memory. UsageReport
// returns the canned rows and remembers the filter it was asked for.
// handles collects the db handle of every list and aggregate read.
type fakeGivenMedicineRepo struct {
	given       []*entity.GivenMedicine
	usage       []entity.MedicineUsage
	usageFilter *entity.UsageReportFilter
	aggregates  int
	handles     []*gorm.DB
}

func (r *fakeGivenMedicineRepo) Create(db *gorm.DB, g *entity.GivenMedicine) error {
	g.ID = uuid.New()
	r.given = append(r.given, g)
	return nil
}
func (r *fakeGivenMedicineRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.GivenMedicine, error) {
	for _, g := range r.given {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, nil
}
func (r *fakeGivenMedicineRepo) FindAll(db *gorm.DB, f *entity.GivenMedicineFilter) ([]entity.GivenMedicine, int64, error) {
	r.handles = append(r.handles, db)
	var out []entity.GivenMedicine
	for _, g := range r.given {
		if f != nil && f.PatientID != nil && g.PatientID != *f.PatientID {
			continue
		}
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}
func (r *fakeGivenMedicineRepo) Update(db *gorm.DB, g *entity.GivenMedicine) error { return nil }
func (r *fakeGivenMedicineRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *fakeGivenMedicineRepo) SumTotal(db *gorm.DB, scope entity.BillingScope) (decimal.Decimal, error) {
	r.aggregates++
	r.handles = append(r.handles, db)
	total := money.Zero
	for _, g := range r.given {
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
	r.aggregates++
	r.handles = append(r.handles, db)
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	totals := map[uuid.UUID]decimal.Decimal{}
	for _, g := range r.given {
		if g.PrescribedMedicine == nil || !wanted[g.PrescribedMedicine.RecordID] {
			continue
		}
		recordID := g.PrescribedMedicine.RecordID
		totals[recordID] = totals[recordID].Add(g.TotalPrice())
	}
	return totals, nil
}
func (r *fakeGivenMedicineRepo) UsageReport(db *gorm.DB, f *entity.UsageReportFilter) ([]entity.MedicineUsage, error) {
	r.usageFilter = f
	return r.usage, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(db *gorm.DB, u *entity.User) error {
	u.ID = uuid.New()
	r.users[u.ID] = u
	return nil
}
func (r *fakeUserRepo) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) FindAll(db *gorm.DB, f *entity.UserFilter) ([]entity.User, int64, error) {
	return nil, 0, nil
}
func (r *fakeUserRepo) Update(db *gorm.DB, u *entity.User) error { return nil }
func (r *fakeUserRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	delete(r.users, id)
	return 1, nil
}

type fakeAuditLogRepo struct {
	logs []*entity.AuditLog
}

func (r *fakeAuditLogRepo) Create(db *gorm.DB, l *entity.AuditLog) error {
	l.ID = int64(len(r.logs) + 1)
	r.logs = append(r.logs, l)
	return nil
}
func (r *fakeAuditLogRepo) FindAll(db *gorm.DB, f *entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	return nil, 0, nil
}
func (r *fakeAuditLogRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	for _, l := range r.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, nil
}

// fakeTokenStore keeps live token ids in memory and records revocations.
type fakeTokenStore struct {
	live       map[string]bool
	revoked    []string
	revokedAll []uuid.UUID
}

func tokenKey(tokenType jwt.TokenType, userID uuid.UUID, tokenID string) string {
	return string(tokenType) + ":" + userID.String() + ":" + tokenID
}

func (s *fakeTokenStore) Save(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	if s.live == nil {
		s.live = map[string]bool{}
	}
	s.live[tokenKey(tokenType, userID, tokenID)] = true
	return nil
}
func (s *fakeTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	return s.live[tokenKey(tokenType, userID, tokenID)], nil
}
func (s *fakeTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	key := tokenKey(tokenType, userID, tokenID)
	delete(s.live, key)
	s.revoked = append(s.revoked, key)
	return nil
}
func (s *fakeTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	s.revokedAll = append(s.revokedAll, userID)
	return nil
}
