package usecase

import (
	"context"
	"time"

	"patients-management/internal/converter"
	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"
	"patients-management/internal/domain/repository"
	"patients-management/pkg/money"

	"github.com/sirupsen/logrus"
)

const (
	PeriodToday = "today"
	PeriodMonth = "month"
)

// Window is an inclusive range of calendar days. A nil bound is open.
type Window struct {
	From *time.Time
	To   *time.Time
}

// ResolveWindow turns the report query into a day window in now's location.
// A named period takes precedence over explicit dates.
func ResolveWindow(period, from, to string, now time.Time) (Window, error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch period {
	case PeriodToday:
		return Window{From: &today, To: &today}, nil
	case PeriodMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return Window{From: &first, To: &today}, nil
	case "":
	default:
		return Window{}, NewValidationError("period", "period must be one of: today month")
	}

	var w Window
	if from != "" {
		d, err := time.ParseInLocation(dto.DateLayout, from, loc)
		if err != nil {
			return Window{}, NewValidationError("from_date", "from_date must be a date in YYYY-MM-DD format")
		}
		w.From = &d
	}
	if to != "" {
		d, err := time.ParseInLocation(dto.DateLayout, to, loc)
		if err != nil {
			return Window{}, NewValidationError("to_date", "to_date must be a date in YYYY-MM-DD format")
		}
		w.To = &d
	}
	if w.From != nil && w.To != nil && w.From.After(*w.To) {
		return Window{}, NewValidationError("from_date", "from_date must not be after to_date")
	}
	return w, nil
}

// Filter converts the window into the half-open given_at range used by storage.
func (w Window) Filter(area string) *entity.UsageReportFilter {
	filter := &entity.UsageReportFilter{From: w.From, Area: area}
	if w.To != nil {
		end := w.To.AddDate(0, 0, 1)
		filter.To = &end
	}
	return filter
}

type ReportUsecase interface {
	GenerateMedicineReport(ctx context.Context, query *dto.MedicineReportQuery) (*dto.MedicineReportResponse, error)
}

type reportUsecase struct {
	db                repository.Transactor
	log               *logrus.Logger
	givenMedicineRepo repository.GivenMedicineRepository
	now               func() time.Time
}

func NewReportUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	givenMedicineRepo repository.GivenMedicineRepository,
	now func() time.Time,
) ReportUsecase {
	if now == nil {
		now = time.Now
	}
	return &reportUsecase{
		db:                db,
		log:               log,
		givenMedicineRepo: givenMedicineRepo,
		now:               now,
	}
}

func (u *reportUsecase) GenerateMedicineReport(ctx context.Context, query *dto.MedicineReportQuery) (*dto.MedicineReportResponse, error) {
	window, err := ResolveWindow(query.Period, query.FromDate, query.ToDate, u.now())
	if err != nil {
		return nil, err
	}

	usage, err := u.givenMedicineRepo.UsageReport(u.db.Conn(ctx), window.Filter(query.Area))
	if err != nil {
		u.log.Warnf("Failed to build medicine usage report: %+v", err)
		return nil, err
	}

	total := money.Zero
	for _, row := range usage {
		total = total.Add(row.TotalPrice)
	}
	totalPrice := money.Format(total)

	return &dto.MedicineReportResponse{
		Metadata: dto.ReportMetadata{
			FromDate:   formatDay(window.From),
			ToDate:     formatDay(window.To),
			TotalPrice: totalPrice,
			FiltersApplied: dto.ReportFiltersApplied{
				Area:   optionalString(query.Area),
				Period: optionalString(query.Period),
			},
		},
		Medicines:  converter.MedicineUsageToResponses(usage),
		TotalPrice: totalPrice,
	}, nil
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
