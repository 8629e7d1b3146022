package models

import "time"

type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LatestInspection struct {
	ScannedAt time.Time `json:"scannedAt"`
	Status    string    `json:"status"`
}

// VerificationSummary is derived per asset, never stored.
type VerificationSummary struct {
	AssetUID         string            `json:"assetUid"`
	Team             string            `json:"team"`
	User             *UserSummary      `json:"user,omitempty"`
	AssetType        string            `json:"assetType"`
	BarcodePhoto     bool              `json:"barcodePhoto"`
	Signature        bool              `json:"signature"`
	LatestInspection *LatestInspection `json:"latestInspection,omitempty"`
}

type VerificationDetail struct {
	VerificationSummary
	Asset         Asset          `json:"asset"`
	SignatureMeta *SignatureMeta `json:"signatureMeta,omitempty"`
	History       []Inspection   `json:"history"`
}

type VerificationFilter struct {
	Team     string
	AssetUID string
	Pagination
}
