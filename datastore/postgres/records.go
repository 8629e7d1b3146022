package postgres

import (
	"database/sql"
	"oamanager/datastore"
	"oamanager/models"
	"time"
)

const assetColumns = `
	a.uid,
	a.name,
	a.asset_type,
	a.model_name,
	a.serial_number,
	a.vendor,
	a.status,
	a.location_text,
	a.building,
	a.floor,
	a.location_row,
	a.location_col,
	a.metadata,
	a.owner_user_id,
	a.barcode_photo_url,
	a.updated_at,
	u.name AS owner_name,
	u.department_hq,
	u.department_dept,
	u.department_team,
	u.department_part`

const assetFrom = `
	FROM assets a
	LEFT JOIN users u ON a.owner_user_id = u.id`

type assetRecord struct {
	UID             string          `db:"uid"`
	Name            sql.NullString  `db:"name"`
	AssetType       sql.NullString  `db:"asset_type"`
	ModelName       sql.NullString  `db:"model_name"`
	SerialNumber    sql.NullString  `db:"serial_number"`
	Vendor          sql.NullString  `db:"vendor"`
	Status          sql.NullString  `db:"status"`
	LocationText    sql.NullString  `db:"location_text"`
	Building        sql.NullString  `db:"building"`
	Floor           sql.NullString  `db:"floor"`
	LocationRow     sql.NullInt32   `db:"location_row"`
	LocationCol     sql.NullInt32   `db:"location_col"`
	Metadata        models.Metadata `db:"metadata"`
	OwnerUserID     sql.NullInt64   `db:"owner_user_id"`
	BarcodePhotoURL sql.NullString  `db:"barcode_photo_url"`
	UpdatedAt       time.Time       `db:"updated_at"`
	OwnerName       sql.NullString  `db:"owner_name"`
	DepartmentHQ    sql.NullString  `db:"department_hq"`
	DepartmentDept  sql.NullString  `db:"department_dept"`
	DepartmentTeam  sql.NullString  `db:"department_team"`
	DepartmentPart  sql.NullString  `db:"department_part"`
}

func optionalInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func (r assetRecord) toRow() datastore.AssetRow {
	row := datastore.AssetRow{
		UID:             r.UID,
		Name:            r.Name.String,
		AssetType:       r.AssetType.String,
		ModelName:       r.ModelName.String,
		SerialNumber:    r.SerialNumber.String,
		Vendor:          r.Vendor.String,
		Status:          r.Status.String,
		LocationText:    r.LocationText.String,
		Building:        r.Building.String,
		Floor:           r.Floor.String,
		LocationRow:     optionalInt(r.LocationRow),
		LocationCol:     optionalInt(r.LocationCol),
		Metadata:        r.Metadata,
		OwnerName:       r.OwnerName.String,
		BarcodePhotoURL: r.BarcodePhotoURL.String,
		UpdatedAt:       datastore.CanonicalTime(r.UpdatedAt),
		OwnerDepartment: datastore.Department{
			HQ:   r.DepartmentHQ.String,
			Dept: r.DepartmentDept.String,
			Team: r.DepartmentTeam.String,
			Part: r.DepartmentPart.String,
		},
	}
	if r.OwnerUserID.Valid {
		id := r.OwnerUserID.Int64
		row.OwnerID = &id
	}
	return row
}

const inspectionColumns = `
	id,
	asset_uid,
	status,
	memo,
	scanned_at,
	synced,
	user_team,
	user_id,
	asset_type,
	verified,
	barcode_photo_url`

type inspectionRecord struct {
	ID              string         `db:"id"`
	AssetUID        string         `db:"asset_uid"`
	Status          sql.NullString `db:"status"`
	Memo            sql.NullString `db:"memo"`
	ScannedAt       time.Time      `db:"scanned_at"`
	Synced          bool           `db:"synced"`
	UserTeam        sql.NullString `db:"user_team"`
	UserID          sql.NullInt64  `db:"user_id"`
	AssetType       sql.NullString `db:"asset_type"`
	Verified        bool           `db:"verified"`
	BarcodePhotoURL sql.NullString `db:"barcode_photo_url"`
}

func (r inspectionRecord) toModel() models.Inspection {
	ins := models.Inspection{
		ID:              r.ID,
		AssetUID:        r.AssetUID,
		Status:          datastore.FirstNonEmpty(r.Status.String, models.StatusInUse),
		Memo:            r.Memo.String,
		ScannedAt:       datastore.CanonicalTime(r.ScannedAt),
		Synced:          r.Synced,
		UserTeam:        r.UserTeam.String,
		AssetType:       r.AssetType.String,
		IsVerified:      r.Verified,
		BarcodePhotoURL: r.BarcodePhotoURL.String,
	}
	if r.UserID.Valid {
		ins.UserID = datastore.FormatUserID(&r.UserID.Int64)
	}
	return ins
}

const signatureColumns = `
	id,
	asset_uid,
	user_id,
	user_name,
	storage_location,
	sha256,
	captured_at`

type signatureRecord struct {
	ID              string         `db:"id"`
	AssetUID        string         `db:"asset_uid"`
	UserID          sql.NullInt64  `db:"user_id"`
	UserName        sql.NullString `db:"user_name"`
	StorageLocation string         `db:"storage_location"`
	SHA256          sql.NullString `db:"sha256"`
	CapturedAt      time.Time      `db:"captured_at"`
}

func (r signatureRecord) toModel() models.SignatureMeta {
	meta := models.SignatureMeta{
		SignatureID:     r.ID,
		AssetUID:        r.AssetUID,
		StorageLocation: r.StorageLocation,
		SHA256:          r.SHA256.String,
		UserName:        r.UserName.String,
		CapturedAt:      datastore.CanonicalTime(r.CapturedAt),
	}
	if r.UserID.Valid {
		meta.UserID = datastore.FormatUserID(&r.UserID.Int64)
	}
	return meta
}

// verificationRecord is an asset row joined with its current signature and
// latest inspection through lateral subqueries.
type verificationRecord struct {
	assetRecord
	SignatureID              sql.NullString `db:"signature_id"`
	SignatureUserID          sql.NullInt64  `db:"signature_user_id"`
	SignatureUserName        sql.NullString `db:"signature_user_name"`
	SignatureStorageLocation sql.NullString `db:"signature_storage_location"`
	SignatureSHA256          sql.NullString `db:"signature_sha256"`
	SignatureCapturedAt      sql.NullTime   `db:"signature_captured_at"`
	LatestScannedAt          sql.NullTime   `db:"latest_scanned_at"`
	LatestStatus             sql.NullString `db:"latest_status"`
}

func (r verificationRecord) signature() *models.SignatureMeta {
	if !r.SignatureID.Valid {
		return nil
	}
	sig := signatureRecord{
		ID:              r.SignatureID.String,
		AssetUID:        r.UID,
		UserID:          r.SignatureUserID,
		UserName:        r.SignatureUserName,
		StorageLocation: r.SignatureStorageLocation.String,
		SHA256:          r.SignatureSHA256,
		CapturedAt:      r.SignatureCapturedAt.Time,
	}.toModel()
	return &sig
}

func (r verificationRecord) latest() *models.LatestInspection {
	if !r.LatestScannedAt.Valid {
		return nil
	}
	return &models.LatestInspection{
		ScannedAt: datastore.CanonicalTime(r.LatestScannedAt.Time),
		Status:    r.LatestStatus.String,
	}
}
