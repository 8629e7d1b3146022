package models

type Owner struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}

// Asset is the presentation view of a stored asset record.
type Asset struct {
	UID             string   `json:"uid"`
	Name            string   `json:"name"`
	AssetType       string   `json:"assetType"`
	ModelName       string   `json:"modelName"`
	SerialNumber    string   `json:"serialNumber"`
	Status          string   `json:"status"`
	Vendor          string   `json:"vendor"`
	Location        string   `json:"location"`
	Organization    string   `json:"organization"`
	Metadata        Metadata `json:"metadata"`
	Owner           *Owner   `json:"owner,omitempty"`
	BarcodePhotoURL string   `json:"barcodePhotoUrl,omitempty"`
}

type AssetDetail struct {
	Asset
	History []Inspection `json:"history"`
}

// AssetPayload is the upsert body. Legacy aliases (assets_types, model,
// serial) are honoured when the primary field is blank.
type AssetPayload struct {
	UID             string     `json:"uid"`
	Name            string     `json:"name"`
	AssetType       string     `json:"assetType"`
	AssetsTypes     string     `json:"assets_types"`
	ModelName       string     `json:"modelName"`
	Model           string     `json:"model"`
	SerialNumber    string     `json:"serialNumber"`
	Serial          string     `json:"serial"`
	Vendor          string     `json:"vendor"`
	Status          string     `json:"status"`
	Location        string     `json:"location"`
	Metadata        Metadata   `json:"metadata"`
	OwnerID         FlexString `json:"ownerId"`
	BarcodePhotoURL string     `json:"barcodePhotoUrl"`
}

type AssetFilter struct {
	Q      string
	Status string
	Team   string
	Pagination
}

type UpsertedAsset struct {
	UID string `json:"uid"`
}

type UpsertResult struct {
	Asset   UpsertedAsset `json:"asset"`
	Created bool          `json:"created"`
}

type AssetStatus struct {
	UID    string `json:"uid"`
	Status string `json:"status"`
}

type AssetRef struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	AssetType string `json:"assetType"`
}
