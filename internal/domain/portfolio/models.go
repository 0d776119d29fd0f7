package portfolio

import "time"

type Customer struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	TaxID         string     `json:"taxId,omitempty"`
	Category      string     `json:"category,omitempty"`
	Address       string     `json:"address,omitempty"`
	District      string     `json:"district,omitempty"`
	ContactName   string     `json:"contactName,omitempty"`
	ContactPhone  string     `json:"contactPhone,omitempty"`
	ContactEmail  string     `json:"contactEmail,omitempty"`
	ManagerName   string     `json:"managerName,omitempty"`
	LastVisitedOn *time.Time `json:"lastVisitedOn,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Active        bool       `json:"active"`
}

const (
	CategoryCorporate  = "Corporate"
	CategoryGovernment = "Government"
	CategoryRetail     = "Retail"
)
