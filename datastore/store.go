// Package datastore defines the storage contract shared by the relational and
// in-memory backends, together with the pure functions that turn canonical
// records into presentation views. Backends only produce canonical records;
// every derived field is computed here.
package datastore

import (
	"context"
	"github.com/pkg/errors"
	"oamanager/models"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	AssetHistorySize        = 50
	VerificationHistorySize = 100
	UserSearchLimit         = 100
	AssetRefSearchLimit     = 25
)

// DataStore is safe for concurrent use without caller-side locking.
type DataStore interface {
	Initialize(ctx context.Context) error
	// Close flushes any pending signature state before releasing the store.
	Close() error

	ListAssets(ctx context.Context, filter models.AssetFilter) (models.Page[models.Asset], error)
	GetAssetDetail(ctx context.Context, uid string) (models.AssetDetail, error)
	UpsertAsset(ctx context.Context, payload models.AssetPayload) (models.UpsertResult, error)
	SoftDeleteAsset(ctx context.Context, uid string) (models.AssetStatus, error)
	GetAllAssetUIDs(ctx context.Context) ([]string, error)

	ListInspections(ctx context.Context, filter models.InspectionFilter) (models.Page[models.Inspection], error)
	CreateInspection(ctx context.Context, payload models.InspectionPayload) (models.Inspection, error)
	UpdateInspection(ctx context.Context, id string, patch models.InspectionPatch) (models.Inspection, error)
	DeleteInspection(ctx context.Context, id string) (bool, error)
	LatestInspectionByAsset(ctx context.Context, assetUID string) (*models.Inspection, error)

	ListVerifications(ctx context.Context, filter models.VerificationFilter) (models.Page[models.VerificationSummary], error)
	GetVerificationDetail(ctx context.Context, assetUID string) (models.VerificationDetail, error)

	RecordSignature(ctx context.Context, assetUID string, input models.SignatureInput) (models.SignatureMeta, error)
	FindSignatureByID(ctx context.Context, signatureID string) (*models.SignatureMeta, error)
	GetSignatureFilePath(ctx context.Context, assetUID string) (string, error)
	BatchAssignSignature(ctx context.Context, assetUIDs []string, signatureID string) ([]string, error)
	PersistSignatures(ctx context.Context) error

	SearchUsers(ctx context.Context, query models.UserQuery) ([]models.UserRef, error)
	SearchAssetRefs(ctx context.Context, q string) ([]models.AssetRef, error)
	DashboardStats(ctx context.Context) (models.DashboardStats, error)
}

// Invalid wraps ErrInvalidInput with context.
func Invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidInput, format, args...)
}

// NotFound wraps ErrNotFound with context.
func NotFound(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}
