package dtos

// ImportRequest is the JSON-mode import body.
type ImportRequest struct {
	Records []VehicleRecord `json:"records"`
	Tag     string          `json:"tag,omitempty"`
	DryRun  bool            `json:"dryRun,omitempty"`
}

type CreateVehicleRequest struct {
	RegistrationNumber string  `json:"registrationNumber,omitempty"`
	Name               string  `json:"name,omitempty"`
	VehicleType        string  `json:"vehicleType"`
	Make               string  `json:"make,omitempty"`
	Model              string  `json:"model,omitempty"`
	Year               FlexInt `json:"year,omitempty"`
}

type ExportArchiveResponse struct {
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   string `json:"expiresIn"`
}
