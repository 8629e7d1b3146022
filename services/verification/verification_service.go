package verificationservice

import (
	"bytes"
	"context"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"io"
	"oamanager/datastore"
	"oamanager/models"
	"oamanager/providers"
	"oamanager/utils"
	"time"
)

const signatureContentType = "image/png"

// SignatureUpload is a signature image as received from the client.
type SignatureUpload struct {
	Content  []byte
	UserID   string
	UserName string
}

type VerificationService interface {
	ListVerifications(ctx context.Context, filter models.VerificationFilter) (models.Page[models.VerificationSummary], error)
	GetVerificationDetail(ctx context.Context, assetUID string) (models.VerificationDetail, error)
	UploadSignature(ctx context.Context, assetUID string, upload SignatureUpload) (models.SignatureMeta, error)
	OpenSignature(ctx context.Context, assetUID string) (providers.BlobInfo, io.ReadCloser, error)
	BatchAssign(ctx context.Context, req models.BatchAssignReq) (models.BatchAssignRes, error)
}

type verificationService struct {
	store  datastore.DataStore
	blobs  providers.BlobProvider
	logger *zap.Logger
	clock  func() time.Time
}

func NewVerificationService(store datastore.DataStore, blobs providers.BlobProvider, logger *zap.Logger) VerificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &verificationService{store: store, blobs: blobs, logger: logger, clock: time.Now}
}

func (s *verificationService) ListVerifications(ctx context.Context, filter models.VerificationFilter) (models.Page[models.VerificationSummary], error) {
	return s.store.ListVerifications(ctx, filter)
}

func (s *verificationService) GetVerificationDetail(ctx context.Context, assetUID string) (models.VerificationDetail, error) {
	return s.store.GetVerificationDetail(ctx, assetUID)
}

// UploadSignature stores the image under a fresh key, then records it. The
// stored object is removed again when the asset cannot take the signature.
func (s *verificationService) UploadSignature(ctx context.Context, assetUID string, upload SignatureUpload) (models.SignatureMeta, error) {
	if len(upload.Content) == 0 {
		return models.SignatureMeta{}, datastore.Invalid("file is required")
	}
	if !utils.IsPNG(upload.Content) {
		return models.SignatureMeta{}, datastore.Invalid("Only PNG signatures are supported")
	}

	key := "signature-" + uuid.NewString() + ".png"
	if _, err := s.blobs.Put(ctx, key, bytes.NewReader(upload.Content), signatureContentType); err != nil {
		return models.SignatureMeta{}, errors.Wrap(err, "failed to store signature image")
	}

	storedAt := s.clock()
	meta, err := s.store.RecordSignature(ctx, assetUID, models.SignatureInput{
		FileName: key,
		StoredAt: &storedAt,
		UserID:   upload.UserID,
		UserName: upload.UserName,
	})
	if err != nil {
		if _, delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to remove orphaned signature image", zap.String("key", key), zap.Error(delErr))
		}
		return models.SignatureMeta{}, err
	}
	if err := s.store.PersistSignatures(ctx); err != nil {
		return models.SignatureMeta{}, err
	}
	s.logger.Info("signature recorded",
		zap.String("assetUid", meta.AssetUID),
		zap.String("signatureId", meta.SignatureID),
		zap.String("driver", s.blobs.Driver()))
	return meta, nil
}

func (s *verificationService) OpenSignature(ctx context.Context, assetUID string) (providers.BlobInfo, io.ReadCloser, error) {
	key, err := s.store.GetSignatureFilePath(ctx, assetUID)
	if err != nil {
		return providers.BlobInfo{}, nil, err
	}
	info, body, err := s.blobs.Get(ctx, key)
	if errors.Is(err, providers.ErrBlobNotFound) {
		return providers.BlobInfo{}, nil, datastore.NotFound("signature image %q", key)
	}
	if err != nil {
		return providers.BlobInfo{}, nil, errors.Wrapf(err, "failed to open signature image %q", key)
	}
	return info, body, nil
}

// BatchAssign copies one signature onto many assets. With ApplyToAll the
// explicit uid list is ignored and every asset is targeted.
func (s *verificationService) BatchAssign(ctx context.Context, req models.BatchAssignReq) (models.BatchAssignRes, error) {
	targets := req.AssetUIDs
	if req.ApplyToAll {
		all, err := s.store.GetAllAssetUIDs(ctx)
		if err != nil {
			return models.BatchAssignRes{}, err
		}
		targets = all
	}

	applied, err := s.store.BatchAssignSignature(ctx, targets, req.SignatureID)
	if err != nil {
		return models.BatchAssignRes{}, err
	}
	if err := s.store.PersistSignatures(ctx); err != nil {
		return models.BatchAssignRes{}, err
	}
	s.logger.Info("signature batch assigned",
		zap.String("signatureId", req.SignatureID),
		zap.Int("requested", len(targets)),
		zap.Int("applied", len(applied)))
	return models.BatchAssignRes{Applied: applied, SignatureID: req.SignatureID}, nil
}
