package models

// Lifecycle vocabulary shared by assets and inspections.
const (
	StatusInUse     = "사용"
	StatusAvailable = "가용(창고)"
	StatusMoving    = "이동"
	StatusDisposed  = "폐기"

	NameUnassigned = "미배정"
	OwnerUnknown   = "미상"
)
