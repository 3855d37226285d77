package dto

type MedicineReportQuery struct {
	FromDate string
	ToDate   string
	Area     string
	Period   string
}

type MedicineUsageResponse struct {
	MedicineName  string `json:"medicine_name"`
	TotalQuantity int64  `json:"total_quantity"`
	PricePerUnit  string `json:"price_per_unit"`
	TotalPrice    string `json:"total_price"`
}

type ReportFiltersApplied struct {
	Area   *string `json:"area"`
	Period *string `json:"period"`
}

type ReportMetadata struct {
	FromDate       *string              `json:"from_date"`
	ToDate         *string              `json:"to_date"`
	TotalPrice     string               `json:"total_price"`
	FiltersApplied ReportFiltersApplied `json:"filters_applied"`
}

type MedicineReportResponse struct {
	Metadata   ReportMetadata          `json:"metadata"`
	Medicines  []MedicineUsageResponse `json:"medicines"`
	TotalPrice string                  `json:"total_price"`
}
