package memory

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"oamanager/datastore"
	"oamanager/models"
	"os"
	"path/filepath"
	"sort"
	"time"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type userFileRecord struct {
	ID               int64  `json:"id"`
	EmployeeID       string `json:"employee_id"`
	EmployeeName     string `json:"employee_name"`
	OrganizationHQ   string `json:"organization_hq"`
	OrganizationDept string `json:"organization_dept"`
	OrganizationTeam string `json:"organization_team"`
	OrganizationPart string `json:"organization_part"`
}

func (r userFileRecord) toUser() user {
	return user{
		ID:         r.ID,
		EmployeeID: datastore.NormalizeString(r.EmployeeID),
		Name:       datastore.NormalizeString(r.EmployeeName),
		Department: datastore.Department{
			HQ:   r.OrganizationHQ,
			Dept: r.OrganizationDept,
			Team: r.OrganizationTeam,
			Part: r.OrganizationPart,
		},
	}
}

// assetFileRecord is the generator's asset shape. Keys it does not know are
// folded into Metadata on read; on write metadata is kept nested.
type assetFileRecord struct {
	UID             string          `json:"asset_uid"`
	Name            string          `json:"name,omitempty"`
	Status          string          `json:"assets_status,omitempty"`
	Category        string          `json:"category,omitempty"`
	ModelName       string          `json:"model_name,omitempty"`
	SerialNumber    string          `json:"serial_number,omitempty"`
	Vendor          string          `json:"vendor,omitempty"`
	Building        string          `json:"building,omitempty"`
	Floor           string          `json:"floor,omitempty"`
	LocationRow     *int            `json:"location_row,omitempty"`
	LocationCol     *int            `json:"location_col,omitempty"`
	LocationText    string          `json:"location_text,omitempty"`
	UserID          *int64          `json:"user_id,omitempty"`
	BarcodePhotoURL string          `json:"barcode_photo_url,omitempty"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
	Metadata        models.Metadata `json:"metadata"`
}

var knownAssetKeys = map[string]bool{
	"id": true, "asset_uid": true, "name": true, "assets_status": true, "category": true,
	"model_name": true, "serial_number": true, "vendor": true, "building": true,
	"floor": true, "location_row": true, "location_col": true, "location_text": true,
	"user_id": true, "barcode_photo_url": true, "created_at": true, "updated_at": true,
	"metadata": true,
}

func (r *assetFileRecord) UnmarshalJSON(data []byte) error {
	type plain assetFileRecord
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}
	var all models.Metadata
	if err := all.UnmarshalJSON(data); err != nil {
		return err
	}
	var extra models.Metadata
	for _, key := range all.Keys() {
		if knownAssetKeys[key] {
			continue
		}
		v, _ := all.Get(key)
		extra.Set(key, v)
	}
	r.Metadata = extra.Merge(r.Metadata)
	return nil
}

func (r assetFileRecord) toAsset() (*asset, bool) {
	uid := datastore.NormalizeString(r.UID)
	if uid == "" {
		return nil, false
	}
	a := &asset{AssetRow: datastore.AssetRow{
		UID:             uid,
		Name:            r.Name,
		AssetType:       r.Category,
		ModelName:       r.ModelName,
		SerialNumber:    r.SerialNumber,
		Vendor:          r.Vendor,
		Status:          datastore.FirstNonEmpty(r.Status, models.StatusInUse),
		LocationText:    r.LocationText,
		Building:        r.Building,
		Floor:           r.Floor,
		LocationRow:     r.LocationRow,
		LocationCol:     r.LocationCol,
		Metadata:        r.Metadata,
		OwnerID:         r.UserID,
		BarcodePhotoURL: r.BarcodePhotoURL,
	}}
	if r.UpdatedAt != nil {
		a.UpdatedAt = datastore.CanonicalTime(*r.UpdatedAt)
	}
	if r.CreatedAt != nil {
		a.CreatedAt = datastore.CanonicalTime(*r.CreatedAt)
	}
	return a, true
}

func assetToFile(a *asset) assetFileRecord {
	rec := assetFileRecord{
		UID:             a.UID,
		Name:            a.Name,
		Status:          a.Status,
		Category:        a.AssetType,
		ModelName:       a.ModelName,
		SerialNumber:    a.SerialNumber,
		Vendor:          a.Vendor,
		Building:        a.Building,
		Floor:           a.Floor,
		LocationRow:     a.LocationRow,
		LocationCol:     a.LocationCol,
		LocationText:    a.LocationText,
		UserID:          a.OwnerID,
		BarcodePhotoURL: a.BarcodePhotoURL,
		Metadata:        a.Metadata.Clone(),
	}
	if !a.CreatedAt.IsZero() {
		t := a.CreatedAt
		rec.CreatedAt = &t
	}
	if !a.UpdatedAt.IsZero() {
		t := a.UpdatedAt
		rec.UpdatedAt = &t
	}
	return rec
}

type inspectionFileRecord struct {
	ID              models.FlexString `json:"id"`
	AssetCode       string            `json:"asset_code"`
	Status          string            `json:"status,omitempty"`
	Memo            string            `json:"memo,omitempty"`
	InspectionDate  *time.Time        `json:"inspection_date,omitempty"`
	Synced          bool              `json:"synced"`
	UserTeam        string            `json:"user_team,omitempty"`
	UserID          *int64            `json:"user_id,omitempty"`
	AssetType       string            `json:"asset_type,omitempty"`
	IsVerified      bool              `json:"is_verified"`
	BarcodePhotoURL string            `json:"barcode_photo_url,omitempty"`
}

func (r inspectionFileRecord) toInspection() (models.Inspection, bool) {
	id := datastore.NormalizeString(string(r.ID))
	assetUID := datastore.NormalizeString(r.AssetCode)
	if id == "" || assetUID == "" {
		return models.Inspection{}, false
	}
	ins := models.Inspection{
		ID:              id,
		AssetUID:        assetUID,
		Status:          datastore.FirstNonEmpty(r.Status, models.StatusInUse),
		Memo:            datastore.NormalizeString(r.Memo),
		Synced:          r.Synced,
		UserTeam:        datastore.NormalizeString(r.UserTeam),
		UserID:          datastore.FormatUserID(r.UserID),
		AssetType:       datastore.NormalizeString(r.AssetType),
		IsVerified:      r.IsVerified,
		BarcodePhotoURL: datastore.NormalizeString(r.BarcodePhotoURL),
	}
	if r.InspectionDate != nil {
		ins.ScannedAt = datastore.CanonicalTime(*r.InspectionDate)
	}
	return ins, true
}

func inspectionToFile(ins models.Inspection) inspectionFileRecord {
	scanned := ins.ScannedAt
	return inspectionFileRecord{
		ID:              models.FlexString(ins.ID),
		AssetCode:       ins.AssetUID,
		Status:          ins.Status,
		Memo:            ins.Memo,
		InspectionDate:  &scanned,
		Synced:          ins.Synced,
		UserTeam:        ins.UserTeam,
		UserID:          datastore.NormalizeUserID(ins.UserID),
		AssetType:       ins.AssetType,
		IsVerified:      ins.IsVerified,
		BarcodePhotoURL: ins.BarcodePhotoURL,
	}
}

// readFile decodes dir/name into dst. A missing file leaves dst untouched.
func (s *Store) readFile(name string, dst interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", name)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrapf(err, "failed to decode %s", name)
	}
	return nil
}

// writeFile replaces dir/name atomically. A snapshot older than the last one
// written for the same file is dropped.
func (s *Store) writeFile(name string, version uint64, v interface{}) error {
	if s.dir == "" {
		return nil
	}
	s.fileMu.Lock()
	defer s.fileMu.Unlock()
	if version < s.written[name] {
		return nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", name)
	}
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file for %s", name)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to write %s", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to close %s", name)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "failed to replace %s", name)
	}
	s.written[name] = version
	return nil
}

// The snapshot helpers are called with s.mu held and return the version
// the snapshot reflects.

func (s *Store) assetSnapshot() ([]assetFileRecord, uint64) {
	uids := make([]string, 0, len(s.assets))
	for uid := range s.assets {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	out := make([]assetFileRecord, 0, len(uids))
	for _, uid := range uids {
		out = append(out, assetToFile(s.assets[uid]))
	}
	return out, s.version
}

func (s *Store) inspectionSnapshot() ([]inspectionFileRecord, uint64) {
	all := make([]models.Inspection, 0, len(s.inspections))
	for _, ins := range s.inspections {
		all = append(all, ins)
	}
	sortInspections(all)
	out := make([]inspectionFileRecord, 0, len(all))
	for _, ins := range all {
		out = append(out, inspectionToFile(ins))
	}
	return out, s.version
}

// flush writes a snapshot taken under the lock. Failures are logged: the
// in-memory state stays authoritative for the life of the process.
func (s *Store) flush(name string, version uint64, v interface{}) {
	if err := s.writeFile(name, version, v); err != nil {
		s.logger.Error("failed to persist snapshot", zap.String("file", name), zap.Error(err))
	}
}
