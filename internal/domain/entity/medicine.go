package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine is a catalog entry with a unit price
type Medicine struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Dose           string          `gorm:"type:varchar(100);not null" json:"dose"`
	ScientificName string          `gorm:"type:varchar(255)" json:"scientific_name"`
	Company        string          `gorm:"type:varchar(255)" json:"company"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Medicine) TableName() string {
	return "medicines"
}

// DisplayName renders the medicine as "Name (Dose)".
func (m *Medicine) DisplayName() string {
	return DisplayName(m.Name, m.Dose)
}

// DisplayName renders a medicine name with its dose.
func DisplayName(name, dose string) string {
	return fmt.Sprintf("%s (%s)", name, dose)
}
