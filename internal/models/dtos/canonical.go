package dtos

// VehicleRecord is the canonical wire format for one vehicle and its detail
// graph. The same shape is produced by export and accepted by import.
// Computed vehicle-level fields (current mileage, next-due dates) are never
// part of the record; importers recompute them from the detail collections.
//
// At least one of registrationNumber, name, or make+model must be present
// alongside vehicleType for the record to be importable.
type VehicleRecord struct {
	RegistrationNumber string    `json:"registrationNumber,omitempty"`
	Name               string    `json:"name,omitempty"`
	VehicleType        string    `json:"vehicleType"`
	Make               string    `json:"make,omitempty"`
	Model              string    `json:"model,omitempty"`
	Year               FlexInt   `json:"year,omitzero"`
	VIN                string    `json:"vin,omitempty"`
	PurchaseCost       FlexFloat `json:"purchaseCost,omitzero"`
	PurchaseDate       string    `json:"purchaseDate,omitempty"`
	PurchaseMileage    FlexInt   `json:"purchaseMileage,omitzero"`
	Status             string    `json:"status,omitempty"`
	TaxExempt          FlexBool  `json:"taxExempt,omitzero"`
	MOTExempt          FlexBool  `json:"motExempt,omitzero"`

	FuelRecords      []FuelRecordEntry      `json:"fuelRecords,omitempty"`
	Parts            []PartEntry            `json:"parts,omitempty"`
	Consumables      []ConsumableEntry      `json:"consumables,omitempty"`
	ServiceRecords   []ServiceRecordEntry   `json:"serviceRecords,omitempty"`
	MOTRecords       []MOTRecordEntry       `json:"motRecords,omitempty"`
	RoadTaxRecords   []RoadTaxRecordEntry   `json:"roadTaxRecords,omitempty"`
	InsuranceRecords []InsuranceRecordEntry `json:"insuranceRecords,omitempty"`
	Images           []ImageEntry           `json:"images,omitempty"`
	Attachments      []AttachmentEntry      `json:"attachments,omitempty"`
	Specification    *SpecificationEntry    `json:"specification,omitempty"`
}

type FuelRecordEntry struct {
	Date         string    `json:"date,omitempty"`
	Mileage      FlexInt   `json:"mileage,omitzero"`
	Litres       FlexFloat `json:"litres,omitzero"`
	CostPerLitre FlexFloat `json:"costPerLitre,omitzero"`
	TotalCost    FlexFloat `json:"totalCost,omitzero"`
	Station      string    `json:"station,omitempty"`
	FullTank     FlexBool  `json:"fullTank,omitzero"`
}

type PartEntry struct {
	Name         string    `json:"name"`
	Category     string    `json:"category,omitempty"`
	PartNumber   string    `json:"partNumber,omitempty"`
	Cost         FlexFloat `json:"cost,omitzero"`
	PurchaseDate string    `json:"purchaseDate,omitempty"`
	Mileage      FlexInt   `json:"mileage,omitzero"`
	Notes        string    `json:"notes,omitempty"`
}

type ConsumableEntry struct {
	Type     string    `json:"type,omitempty"`
	Brand    string    `json:"brand,omitempty"`
	Quantity FlexFloat `json:"quantity,omitzero"`
	Cost     FlexFloat `json:"cost,omitzero"`
	Date     string    `json:"date,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

type ServiceRecordEntry struct {
	Date      string             `json:"date,omitempty"`
	Mileage   FlexInt            `json:"mileage,omitzero"`
	Garage    string             `json:"garage,omitempty"`
	TotalCost FlexFloat          `json:"totalCost,omitzero"`
	Notes     string             `json:"notes,omitempty"`
	Items     []ServiceItemEntry `json:"items,omitempty"`
}

type ServiceItemEntry struct {
	Description string    `json:"description"`
	Cost        FlexFloat `json:"cost,omitzero"`
}

type MOTRecordEntry struct {
	TestDate      string  `json:"testDate,omitempty"`
	ExpiryDate    string  `json:"expiryDate,omitempty"`
	Result        string  `json:"result,omitempty"`
	TestNumber    string  `json:"testNumber,omitempty"`
	Mileage       FlexInt `json:"mileage,omitzero"`
	AdvisoryNotes string  `json:"advisoryNotes,omitempty"`
}

type RoadTaxRecordEntry struct {
	ValidFrom string    `json:"validFrom,omitempty"`
	ValidTo   string    `json:"validTo,omitempty"`
	Cost      FlexFloat `json:"cost,omitzero"`
}

type InsuranceRecordEntry struct {
	Provider     string    `json:"provider"`
	PolicyNumber string    `json:"policyNumber,omitempty"`
	StartDate    string    `json:"startDate,omitempty"`
	EndDate      string    `json:"endDate,omitempty"`
	AnnualCost   FlexFloat `json:"annualCost,omitzero"`
}

// ImageEntry and AttachmentEntry reference their binary payload by fileName,
// resolved against the files/ tree when the record travels inside an archive.
type ImageEntry struct {
	FileName  string   `json:"fileName"`
	Caption   string   `json:"caption,omitempty"`
	IsPrimary FlexBool `json:"isPrimary,omitzero"`
}

type AttachmentEntry struct {
	FileName    string `json:"fileName"`
	Description string `json:"description,omitempty"`
}

type SpecificationEntry struct {
	EngineSize   string  `json:"engineSize,omitempty"`
	FuelType     string  `json:"fuelType,omitempty"`
	Transmission string  `json:"transmission,omitempty"`
	Doors        FlexInt `json:"doors,omitzero"`
	Seats        FlexInt `json:"seats,omitzero"`
	Colour       string  `json:"colour,omitempty"`
	KerbWeightKg FlexInt `json:"kerbWeightKg,omitzero"`
}
