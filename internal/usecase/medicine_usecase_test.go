package usecase

import (
	"context"
	"errors"
	"testing"

	"patients-management/internal/delivery/dto"
	"patients-management/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestMedicineCreateRoundsPrice(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  string
	}{
		{name: "whole", price: "12", want: "12.00"},
		{name: "half cent rounds up", price: "8.505", want: "8.51"},
		{name: "already two places", price: "8.50", want: "8.50"},
		{name: "free", price: "0", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClinic()
			price := decimal.RequireFromString(tt.price)
			resp, err := c.medicineUsecase.Create(context.Background(), &dto.CreateMedicineRequest{
				Name:  "Paracetamol",
				Dose:  "500mg",
				Price: &price,
			})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if resp.Price != tt.want {
				t.Errorf("price = %s, want %s", resp.Price, tt.want)
			}
			if len(c.audit.logs) != 1 || c.audit.logs[0].Action != entity.AuditActionMedicineCreate {
				t.Errorf("audit = %+v, want one medicine.create entry", c.audit.logs)
			}
		})
	}
}

func TestMedicineDelete(t *testing.T) {
	tests := []struct {
		name       string
		prescribed bool
		unknown    bool
		wantErr    error
		wantAudit  int
	}{
		{name: "unused medicine", wantAudit: 1},
		{name: "prescribed medicine", prescribed: true, wantErr: ErrMedicineInUse},
		{name: "unknown medicine", unknown: true, wantErr: ErrMedicineNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClinic()
			id := c.amoxicillin.ID
			if tt.unknown {
				id = uuid.New()
			}
			if tt.prescribed {
				c.medicines.prescribed = map[uuid.UUID]bool{c.amoxicillin.ID: true}
			}

			err := c.medicineUsecase.Delete(context.Background(), id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Delete err = %v, want %v", err, tt.wantErr)
			}

			_, stillThere := c.medicines.medicines[c.amoxicillin.ID]
			if tt.wantErr == nil && stillThere {
				t.Error("medicine still stored after delete")
			}
			if tt.wantErr != nil && !stillThere {
				t.Error("medicine removed despite the error")
			}
			if len(c.audit.logs) != tt.wantAudit {
				t.Errorf("audit entries = %d, want %d", len(c.audit.logs), tt.wantAudit)
			}
		})
	}
}

func TestMedicineGetByIDUnknown(t *testing.T) {
	c := newClinic()
	if _, err := c.medicineUsecase.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrMedicineNotFound) {
		t.Errorf("err = %v, want ErrMedicineNotFound", err)
	}
}
