package models

import "time"

type Inspection struct {
	ID              string    `json:"id"`
	AssetUID        string    `json:"assetUid"`
	Status          string    `json:"status"`
	Memo            string    `json:"memo,omitempty"`
	ScannedAt       time.Time `json:"scannedAt"`
	Synced          bool      `json:"synced"`
	UserTeam        string    `json:"userTeam,omitempty"`
	UserID          string    `json:"userId,omitempty"`
	AssetType       string    `json:"assetType,omitempty"`
	IsVerified      bool      `json:"isVerified"`
	BarcodePhotoURL string    `json:"barcodePhotoUrl,omitempty"`
}

type InspectionPayload struct {
	ID              string     `json:"id"`
	AssetUID        string     `json:"assetUid"`
	AssetCode       string     `json:"asset_code"`
	Status          string     `json:"status"`
	Memo            string     `json:"memo"`
	ScannedAt       FlexString `json:"scannedAt"`
	Synced          FlexString `json:"synced"`
	UserTeam        string     `json:"userTeam"`
	UserID          FlexString `json:"userId"`
	AssetType       string     `json:"assetType"`
	IsVerified      FlexString `json:"isVerified"`
	BarcodePhotoURL string     `json:"barcodePhotoUrl"`
}

// InspectionPatch leaves a field unchanged when it is blank, except Memo,
// which is cleared by an explicit null.
type InspectionPatch struct {
	Status          string         `json:"status"`
	Memo            OptionalString `json:"memo"`
	ScannedAt       FlexString     `json:"scannedAt"`
	Synced          FlexString     `json:"synced"`
	UserTeam        string         `json:"userTeam"`
	UserID          FlexString     `json:"userId"`
	AssetType       string         `json:"assetType"`
	IsVerified      FlexString     `json:"isVerified"`
	BarcodePhotoURL string         `json:"barcodePhotoUrl"`
}

type InspectionFilter struct {
	AssetUID string
	Synced   *bool
	From     *time.Time
	To       *time.Time
	Pagination
}
