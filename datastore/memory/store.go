// Package memory is the file-backed DataStore. Records live in process
// memory; every mutation is mirrored to JSON snapshot files in a directory
// that is also the seed source on startup.
package memory

import (
	"context"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"oamanager/datastore"
	"oamanager/models"
	"oamanager/providers"
	"os"
	"sync"
	"time"
)

const (
	usersFile       = "users.json"
	assetsFile      = "assets.json"
	inspectionsFile = "asset_inspections.json"
	signaturesFile  = "signatures.json"
	assignmentsFile = "signature_assignments.json"
)

type user struct {
	ID         int64
	EmployeeID string
	Name       string
	Department datastore.Department
}

type asset struct {
	datastore.AssetRow
	CreatedAt time.Time
}

type Store struct {
	dir    string
	blobs  providers.BlobProvider
	logger *zap.Logger
	clock  func() time.Time

	mu          sync.RWMutex
	users       map[int64]user
	employees   map[string]int64
	assets      map[string]*asset
	inspections map[string]models.Inspection
	signatures  []models.SignatureMeta
	version     uint64

	fileMu  sync.Mutex
	written map[string]uint64
}

var _ datastore.DataStore = (*Store)(nil)

// New builds an empty store. Nothing is read until Initialize; an empty dir
// keeps the store purely in memory.
func New(dir string, blobs providers.BlobProvider, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		dir:         dir,
		blobs:       blobs,
		logger:      logger,
		clock:       time.Now,
		users:       make(map[int64]user),
		employees:   make(map[string]int64),
		assets:      make(map[string]*asset),
		inspections: make(map[string]models.Inspection),
		written:     make(map[string]uint64),
	}
}

func (s *Store) Initialize(ctx context.Context) error {
	if s.dir == "" {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create data directory %s", s.dir)
	}

	var (
		users       []userFileRecord
		assets      []assetFileRecord
		inspections []inspectionFileRecord
		signatures  []models.SignatureMeta
	)
	for name, dst := range map[string]interface{}{
		usersFile:       &users,
		assetsFile:      &assets,
		inspectionsFile: &inspections,
		signaturesFile:  &signatures,
	} {
		if err := s.readFile(name, dst); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		rec := u.toUser()
		s.users[rec.ID] = rec
		if rec.EmployeeID != "" {
			s.employees[rec.EmployeeID] = rec.ID
		}
	}
	for _, a := range assets {
		rec, ok := a.toAsset()
		if !ok {
			s.logger.Warn("skipping asset without uid in seed file")
			continue
		}
		s.assets[rec.UID] = rec
	}
	for _, i := range inspections {
		rec, ok := i.toInspection()
		if !ok {
			s.logger.Warn("skipping inspection without id or asset code in seed file")
			continue
		}
		s.inspections[rec.ID] = rec
	}
	for _, sig := range signatures {
		sig.CapturedAt = datastore.CanonicalTime(sig.CapturedAt)
		s.signatures = append(s.signatures, sig)
	}

	s.logger.Info("memory store loaded",
		zap.String("dir", s.dir),
		zap.Int("users", len(s.users)),
		zap.Int("assets", len(s.assets)),
		zap.Int("inspections", len(s.inspections)),
		zap.Int("signatures", len(s.signatures)))
	return nil
}

func (s *Store) Close() error {
	return s.PersistSignatures(context.Background())
}

func (s *Store) now() time.Time {
	return datastore.CanonicalTime(s.clock())
}

// resolveOwner accepts an employee id or a numeric user id. Unknown users
// resolve to nil.
func (s *Store) resolveOwner(raw string) *int64 {
	raw = datastore.NormalizeString(raw)
	if raw == "" {
		return nil
	}
	if id, ok := s.employees[raw]; ok {
		return &id
	}
	id := datastore.NormalizeUserID(raw)
	if id == nil {
		return nil
	}
	if _, ok := s.users[*id]; !ok {
		return nil
	}
	return id
}

// row joins an asset with its owner. Callers hold s.mu.
func (s *Store) row(a *asset) datastore.AssetRow {
	row := a.AssetRow
	row.Metadata = a.Metadata.Clone()
	if row.OwnerID != nil {
		if u, ok := s.users[*row.OwnerID]; ok {
			row.OwnerName = u.Name
			row.OwnerDepartment = u.Department
		}
	}
	return row
}
