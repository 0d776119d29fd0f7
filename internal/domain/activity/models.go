package activity

import "time"

type Visit struct {
	ID            int64     `json:"id"`
	PlanID        int64     `json:"planId"`
	CustomerID    int64     `json:"customerId"`
	CheckedInAt   time.Time `json:"checkedInAt"`
	Outcome       string    `json:"outcome,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	SitePhotoURL  string    `json:"sitePhotoUrl"`
	StampPhotoURL string    `json:"stampPhotoUrl"`
	Lat           *float64  `json:"lat,omitempty"`
	Lon           *float64  `json:"lon,omitempty"`
}

type Call struct {
	ID              int64     `json:"id"`
	PlanID          int64     `json:"planId"`
	DialedNumber    string    `json:"dialedNumber"`
	ContactName     string    `json:"contactName,omitempty"`
	DurationSeconds int       `json:"durationSeconds"`
	Outcome         string    `json:"outcome,omitempty"`
	CalledAt        time.Time `json:"calledAt"`
	Notes           string    `json:"notes,omitempty"`
}

type Email struct {
	ID             int64     `json:"id"`
	PlanID         int64     `json:"planId"`
	Recipient      string    `json:"recipient"`
	Subject        string    `json:"subject,omitempty"`
	DeliveryStatus string    `json:"deliveryStatus"`
	SentAt         time.Time `json:"sentAt"`
}

type VisitInput struct {
	PlanID        int64
	CustomerID    int64
	Outcome       string
	Notes         string
	SitePhotoURL  string
	StampPhotoURL string
	Lat           *float64
	Lon           *float64
}

type CallInput struct {
	PlanID          int64
	DialedNumber    string
	ContactName     string
	DurationSeconds int
	Outcome         string
	Notes           string
}

type EmailInput struct {
	PlanID    int64
	Recipient string
	Subject   string
}
