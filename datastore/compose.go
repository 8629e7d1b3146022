package datastore

import (
	"fmt"
	"math"
	"oamanager/models"
	"strings"
	"time"
)

// Department is the four-level owner hierarchy; any level may be blank.
type Department struct {
	HQ   string
	Dept string
	Team string
	Part string
}

func (d Department) levels() []string {
	return []string{d.HQ, d.Dept, d.Team, d.Part}
}

// AssetRow is the canonical shape every backend produces for an asset joined
// with its owner.
type AssetRow struct {
	UID             string
	Name            string
	AssetType       string
	ModelName       string
	SerialNumber    string
	Vendor          string
	Status          string
	LocationText    string
	Building        string
	Floor           string
	LocationRow     *int
	LocationCol     *int
	Metadata        models.Metadata
	OwnerID         *int64
	OwnerName       string
	OwnerDepartment Department
	BarcodePhotoURL string
	UpdatedAt       time.Time
}

// ComposeLocation prefers the free-text location, otherwise joins building,
// floor and the R<row>/C<col> grid coordinates.
func ComposeLocation(row AssetRow) string {
	if loc := NormalizeString(row.LocationText); loc != "" {
		return loc
	}
	var parts []string
	for _, p := range []string{row.Building, row.Floor} {
		if s := NormalizeString(p); s != "" {
			parts = append(parts, s)
		}
	}
	if row.LocationRow != nil {
		parts = append(parts, fmt.Sprintf("R%d", *row.LocationRow))
	}
	if row.LocationCol != nil {
		parts = append(parts, fmt.Sprintf("C%d", *row.LocationCol))
	}
	return strings.Join(parts, " ")
}

// ComposeDepartment renders "hq > dept > team > part", skipping blank levels.
func ComposeDepartment(d Department) string {
	var parts []string
	for _, level := range d.levels() {
		if s := NormalizeString(level); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " > ")
}

// ResolveOrganization picks the single display label for the owning unit:
// an explicit metadata label, else the owner's team, department or
// headquarters.
func ResolveOrganization(metadata models.Metadata, owner Department) string {
	org, _ := metadata.Get("organization")
	orgTeam, _ := metadata.Get("organization_team")
	return FirstNonEmpty(org, orgTeam, owner.Team, owner.Dept, owner.HQ)
}

var barcodeMetadataKeys = []string{"barcodePhotoUrl", "barcode_photo_url", "barcode_photo"}

// ResolveBarcodePhotoURL checks the column first, then legacy metadata keys.
func ResolveBarcodePhotoURL(row AssetRow) string {
	candidates := []string{row.BarcodePhotoURL}
	for _, key := range barcodeMetadataKeys {
		v, _ := row.Metadata.Get(key)
		candidates = append(candidates, v)
	}
	return FirstNonEmpty(candidates...)
}

func BuildOwner(row AssetRow) *models.Owner {
	if row.OwnerID == nil {
		return nil
	}
	return &models.Owner{
		ID:         FormatUserID(row.OwnerID),
		Name:       FirstNonEmpty(row.OwnerName, models.OwnerUnknown),
		Department: ComposeDepartment(row.OwnerDepartment),
	}
}

func BuildAsset(row AssetRow) models.Asset {
	owner := BuildOwner(row)
	ownerName := ""
	if owner != nil {
		ownerName = owner.Name
	}
	return models.Asset{
		UID:             row.UID,
		Name:            FirstNonEmpty(row.Name, ownerName, models.NameUnassigned),
		AssetType:       NormalizeString(row.AssetType),
		ModelName:       NormalizeString(row.ModelName),
		SerialNumber:    NormalizeString(row.SerialNumber),
		Status:          FirstNonEmpty(row.Status, models.StatusInUse),
		Vendor:          NormalizeString(row.Vendor),
		Location:        ComposeLocation(row),
		Organization:    ResolveOrganization(row.Metadata, row.OwnerDepartment),
		Metadata:        row.Metadata.Clone(),
		Owner:           owner,
		BarcodePhotoURL: ResolveBarcodePhotoURL(row),
	}
}

// BuildVerificationSummary joins an asset with its current signature and
// latest inspection. Either may be nil; absence is reported, not an error.
func BuildVerificationSummary(row AssetRow, signature *models.SignatureMeta, latest *models.LatestInspection) models.VerificationSummary {
	asset := BuildAsset(row)
	summary := models.VerificationSummary{
		AssetUID:     asset.UID,
		Team:         asset.Organization,
		AssetType:    asset.AssetType,
		BarcodePhoto: asset.BarcodePhotoURL != "",
		Signature:    signature != nil,
	}
	if asset.Owner != nil {
		summary.User = &models.UserSummary{ID: asset.Owner.ID, Name: asset.Owner.Name}
	}
	if latest != nil {
		summary.LatestInspection = &models.LatestInspection{
			ScannedAt: latest.ScannedAt,
			Status:    FirstNonEmpty(latest.Status, asset.Status),
		}
	}
	return summary
}

func BuildVerificationDetail(row AssetRow, signature *models.SignatureMeta, latest *models.LatestInspection, history []models.Inspection) models.VerificationDetail {
	if history == nil {
		history = make([]models.Inspection, 0)
	}
	return models.VerificationDetail{
		VerificationSummary: BuildVerificationSummary(row, signature, latest),
		Asset:               BuildAsset(row),
		SignatureMeta:       signature,
		History:             history,
	}
}

// MatchesQuery is the free-text asset search: uid, name, type, model, serial
// and vendor, case-insensitive substring, OR'd.
func MatchesQuery(row AssetRow, q string) bool {
	needle := strings.ToLower(NormalizeString(q))
	if needle == "" {
		return true
	}
	for _, field := range []string{row.UID, row.Name, row.AssetType, row.ModelName, row.SerialNumber, row.Vendor} {
		if containsFold(field, needle) {
			return true
		}
	}
	return false
}

func MatchesStatus(row AssetRow, status string) bool {
	want := NormalizeString(status)
	if want == "" {
		return true
	}
	return strings.EqualFold(row.Status, want)
}

// MatchesTeam searches the metadata organization labels and every owner
// department level, so it covers whatever ResolveOrganization may pick.
func MatchesTeam(row AssetRow, team string) bool {
	needle := strings.ToLower(NormalizeString(team))
	if needle == "" {
		return true
	}
	org, _ := row.Metadata.Get("organization")
	orgTeam, _ := row.Metadata.Get("organization_team")
	fields := append([]string{org, orgTeam}, row.OwnerDepartment.levels()...)
	for _, field := range fields {
		if containsFold(field, needle) {
			return true
		}
	}
	return false
}

func MatchesDepartment(d Department, team string) bool {
	needle := strings.ToLower(NormalizeString(team))
	if needle == "" {
		return true
	}
	for _, level := range d.levels() {
		if containsFold(level, needle) {
			return true
		}
	}
	return false
}

// InspectionRate is inspected/total as a percentage with one decimal.
func InspectionRate(inspected, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(inspected)/float64(total)*1000) / 10
}

// DefaultInspectionID is used when a new inspection arrives without an id.
func DefaultInspectionID(assetUID string, at time.Time) string {
	return fmt.Sprintf("ins_%s_%d", assetUID, at.UnixMilli())
}
