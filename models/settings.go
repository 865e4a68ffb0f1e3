package models

import "avon-hello/campaign"

// CampaignSettings is one row of the append-only campaign_settings table
type CampaignSettings struct {
	ID int64 `json:"id"`
	campaign.Counter
	CreatedAt string `json:"createdAt"`
}

// CampaignUpdateRequest sets the counter directly.
// Zero fields keep their current value.
// Example: {"year": 2026, "campaign": 1, "lastCampaign": 26}
type CampaignUpdateRequest struct {
	Year         int `json:"year,omitempty"`
	Campaign     int `json:"campaign,omitempty"`
	LastCampaign int `json:"lastCampaign,omitempty"`
}

// Representative is the ambassador printed on invoices
type Representative struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	CellPhone   string `json:"cellPhone"`
	OfficePhone string `json:"officePhone"`
	// LogoPath is an image file printed at the top of HTML/PDF invoices
	LogoPath  string `json:"logoPath,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// DefaultRepresentative is shown until representative info is saved
func DefaultRepresentative() Representative {
	return Representative{
		Name:        "Ambassador Name",
		Address:     "Ambassador Address",
		Phone:       "000-000-0000",
		Email:       "email@example.com",
		Website:     "www.example.com",
		CellPhone:   "000-000-0000",
		OfficePhone: "000-000-0000",
	}
}
