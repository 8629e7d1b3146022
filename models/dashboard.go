package models

type DashboardStats struct {
	TotalAssets     int     `json:"totalAssets"`
	InspectedAssets int     `json:"inspectedAssets"`
	InspectionRate  float64 `json:"inspectionRate"`
	UnverifiedCount int     `json:"unverifiedCount"`
	DisposedCount   int     `json:"disposedCount"`
}
