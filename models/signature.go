package models

import "time"

type SignatureMeta struct {
	SignatureID     string    `json:"signatureId"`
	AssetUID        string    `json:"assetUid"`
	StorageLocation string    `json:"storageLocation"`
	SHA256          string    `json:"sha256,omitempty"`
	UserID          string    `json:"userId,omitempty"`
	UserName        string    `json:"userName,omitempty"`
	CapturedAt      time.Time `json:"capturedAt"`
}

// SignatureInput describes an image that is already in signature storage.
type SignatureInput struct {
	FileName string
	StoredAt *time.Time
	UserID   string
	UserName string
}

type BatchAssignReq struct {
	AssetUIDs   []string `json:"assetUids"`
	SignatureID string   `json:"signatureId" validate:"required"`
	ApplyToAll  bool     `json:"applyToAll"`
}

type BatchAssignRes struct {
	Applied     []string `json:"applied"`
	SignatureID string   `json:"signatureId"`
}

type SignatureUploadRes struct {
	SignatureID     string `json:"signatureId"`
	StorageLocation string `json:"storageLocation"`
}
