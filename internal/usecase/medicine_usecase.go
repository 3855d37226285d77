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

var (
	ErrMedicineNotFound = errors.New("medicine not found")
	ErrMedicineInUse    = errors.New("medicine is prescribed and cannot be deleted")
)

type MedicineUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	GetAll(ctx context.Context, query *dto.MedicineListQuery) ([]dto.MedicineResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type medicineUsecase struct {
	db           repository.Transactor
	log          *logrus.Logger
	medicineRepo repository.MedicineRepository
	auditService service.AuditService
}

func NewMedicineUsecase(
	db repository.Transactor,
	log *logrus.Logger,
	medicineRepo repository.MedicineRepository,
	auditService service.AuditService,
) MedicineUsecase {
	return &medicineUsecase{
		db:           db,
		log:          log,
		medicineRepo: medicineRepo,
		auditService: auditService,
	}
}

func (u *medicineUsecase) Create(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine := &entity.Medicine{
		Name:           req.Name,
		Dose:           req.Dose,
		ScientificName: req.ScientificName,
		Company:        req.Company,
		Price:          money.Round(*req.Price),
	}

	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.medicineRepo.Create(tx, medicine); err != nil {
			u.log.Warnf("Failed to create medicine: %+v", err)
			return err
		}
		return u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionMedicineCreate, "medicine", medicine.ID.String(), converter.MedicineToResponse(medicine))
	})
	if err != nil {
		return nil, err
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) GetAll(ctx context.Context, query *dto.MedicineListQuery) ([]dto.MedicineResponse, int64, error) {
	medicines, total, err := u.medicineRepo.FindAll(u.db.Conn(ctx), &entity.MedicineFilter{
		Search:     query.Search,
		Pagination: query.Pagination(),
	})
	if err != nil {
		u.log.Warnf("Failed to find medicines: %+v", err)
		return nil, 0, err
	}

	return converter.MedicinesToResponses(medicines), total, nil
}

func (u *medicineUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	medicine, err := u.find(u.db.Conn(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	var medicine *entity.Medicine
	err := u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		medicine, err = u.find(tx, id)
		if err != nil {
			return err
		}
		oldValue := converter.MedicineToResponse(medicine)

		medicine.Name = req.Name
		medicine.Dose = req.Dose
		medicine.ScientificName = req.ScientificName
		medicine.Company = req.Company
		medicine.Price = money.Round(*req.Price)

		if err := u.medicineRepo.Update(tx, medicine); err != nil {
			u.log.Warnf("Failed to update medicine: %+v", err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionMedicineUpdate, "medicine", id.String(), oldValue, converter.MedicineToResponse(medicine))
	})
	if err != nil {
		return nil, err
	}

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.db.WithinTransaction(ctx, func(tx *gorm.DB) error {
		medicine, err := u.find(tx, id)
		if err != nil {
			return err
		}

		if _, err := u.medicineRepo.Delete(tx, id); err != nil {
			if isForeignKeyError(err, "medicine") {
				return ErrMedicineInUse
			}
			u.log.Warnf("Failed to delete medicine: %+v", err)
			return err
		}

		return u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionMedicineDelete, "medicine", id.String(), converter.MedicineToResponse(medicine))
	})
}

func (u *medicineUsecase) find(db *gorm.DB, id uuid.UUID) (*entity.Medicine, error) {
	medicine, err := u.medicineRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine: %+v", err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}
	return medicine, nil
}
