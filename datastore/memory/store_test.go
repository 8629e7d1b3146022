package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"math"
	"oamanager/datastore"
	"oamanager/models"
	blobprovider "oamanager/providers/blobProvider"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type fixture struct {
	store *Store
	blobs *blobprovider.Memory
	dir   string
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		blobs: blobprovider.NewMemory(),
		dir:   t.TempDir(),
		now:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	f.store = New(f.dir, f.blobs, nil)
	f.store.clock = func() time.Time {
		f.now = f.now.Add(time.Second)
		return f.now
	}
	require.NoError(t, f.store.Initialize(context.Background()))
	return f
}

func (f *fixture) putBlob(t *testing.T, key, content string) {
	t.Helper()
	_, err := f.blobs.Put(context.Background(), key, strings.NewReader(content), "image/png")
	require.NoError(t, err)
}

func (f *fixture) upsert(t *testing.T, payload models.AssetPayload) models.UpsertResult {
	t.Helper()
	res, err := f.store.UpsertAsset(context.Background(), payload)
	require.NoError(t, err)
	return res
}

func TestUpsertAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("requires uid", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.store.UpsertAsset(ctx, models.AssetPayload{UID: "  "})
		assert.ErrorIs(t, err, datastore.ErrInvalidInput)
	})

	t.Run("creates with defaults", func(t *testing.T) {
		f := newFixture(t)
		res := f.upsert(t, models.AssetPayload{UID: "A00001"})
		assert.True(t, res.Created)

		detail, err := f.store.GetAssetDetail(ctx, "A00001")
		require.NoError(t, err)
		assert.Equal(t, models.NameUnassigned, detail.Name)
		assert.Equal(t, models.StatusInUse, detail.Status)
		assert.Equal(t, 0, detail.Metadata.Len())
		assert.Nil(t, detail.Owner)
		assert.Empty(t, detail.History)
	})

	t.Run("absent fields stay unchanged and metadata merges", func(t *testing.T) {
		f := newFixture(t)
		f.upsert(t, models.AssetPayload{
			UID:          "A00002",
			Name:         "Laptop",
			AssetsTypes:  "노트북",
			Model:        "X1",
			Serial:       "SN-1",
			Vendor:       "Lenovo",
			Status:       models.StatusAvailable,
			Location:     "본사A동 3층",
			Metadata:     models.NewMetadata("network", "사내망", "organization", "플랫폼팀"),
		})
		res := f.upsert(t, models.AssetPayload{
			UID:      "A00002",
			Vendor:   "  ",
			Metadata: models.NewMetadata("organization", "검사팀", "mac", "AA:BB"),
		})
		assert.False(t, res.Created)

		detail, err := f.store.GetAssetDetail(ctx, "A00002")
		require.NoError(t, err)
		assert.Equal(t, "Laptop", detail.Name)
		assert.Equal(t, "노트북", detail.AssetType)
		assert.Equal(t, "X1", detail.ModelName)
		assert.Equal(t, "SN-1", detail.SerialNumber)
		assert.Equal(t, "Lenovo", detail.Vendor)
		assert.Equal(t, models.StatusAvailable, detail.Status)
		assert.Equal(t, "본사A동 3층", detail.Location)
		assert.Equal(t, []string{"network", "organization", "mac"}, detail.Metadata.Keys())
		org, _ := detail.Metadata.Get("organization")
		assert.Equal(t, "검사팀", org)
		assert.Equal(t, "검사팀", detail.Organization)
	})
}

func TestSoftDeleteKeepsAssetAndHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.upsert(t, models.AssetPayload{UID: "A00010"})
	_, err := f.store.CreateInspection(ctx, models.InspectionPayload{AssetUID: "A00010"})
	require.NoError(t, err)

	status, err := f.store.SoftDeleteAsset(ctx, "A00010")
	require.NoError(t, err)
	assert.Equal(t, models.AssetStatus{UID: "A00010", Status: models.StatusDisposed}, status)

	page, err := f.store.ListAssets(ctx, models.AssetFilter{Q: "A00010"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, models.StatusDisposed, page.Items[0].Status)

	detail, err := f.store.GetAssetDetail(ctx, "A00010")
	require.NoError(t, err)
	assert.Len(t, detail.History, 1)

	_, err = f.store.SoftDeleteAsset(ctx, "missing")
	assert.ErrorIs(t, err, datastore.ErrNotFound)
}

func TestListAssetsFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.users[7] = user{ID: 7, Name: "김민준", Department: datastore.Department{HQ: "생산본부", Team: "자동화팀"}}

	f.upsert(t, models.AssetPayload{UID: "A00003", Vendor: "Dell", OwnerID: "7"})
	f.upsert(t, models.AssetPayload{UID: "A00001", Vendor: "HP", Status: models.StatusMoving})
	f.upsert(t, models.AssetPayload{UID: "A00002", Vendor: "dell", Metadata: models.NewMetadata("organization", "품질보증팀")})

	page, err := f.store.ListAssets(ctx, models.AssetFilter{})
	require.NoError(t, err)
	var uids []string
	for _, a := range page.Items {
		uids = append(uids, a.UID)
	}
	assert.Equal(t, []string{"A00002", "A00001", "A00003"}, uids)

	tests := []struct {
		name   string
		filter models.AssetFilter
		want   []string
	}{
		{name: "q matches vendor case-insensitively", filter: models.AssetFilter{Q: "DELL"}, want: []string{"A00002", "A00003"}},
		{name: "status is exact", filter: models.AssetFilter{Status: models.StatusMoving}, want: []string{"A00001"}},
		{name: "team matches owner department", filter: models.AssetFilter{Team: "자동화"}, want: []string{"A00003"}},
		{name: "team matches metadata organization", filter: models.AssetFilter{Team: "품질"}, want: []string{"A00002"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.store.ListAssets(ctx, tt.filter)
			require.NoError(t, err)
			var got []string
			for _, a := range page.Items {
				got = append(got, a.UID)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), page.Total)
		})
	}

	owned, err := f.store.GetAssetDetail(ctx, "A00003")
	require.NoError(t, err)
	require.NotNil(t, owned.Owner)
	assert.Equal(t, "7", owned.Owner.ID)
	assert.Equal(t, models.NameUnassigned, owned.Name)
	assert.Equal(t, "김민준", owned.Owner.Name)
	assert.Equal(t, "생산본부 > 자동화팀", owned.Owner.Department)
	assert.Equal(t, "자동화팀", owned.Organization)
}

func TestListAssetsPaginationBoundary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 20; i++ {
		f.upsert(t, models.AssetPayload{UID: fmt.Sprintf("B%05d", i)})
	}

	first, err := f.store.ListAssets(ctx, models.AssetFilter{})
	require.NoError(t, err)
	assert.Len(t, first.Items, 20)
	assert.Equal(t, 20, first.Total)
	assert.Equal(t, models.DefaultPageSize, first.PageSize)

	second, err := f.store.ListAssets(ctx, models.AssetFilter{Pagination: models.Pagination{Page: 1}})
	require.NoError(t, err)
	assert.NotNil(t, second.Items)
	assert.Empty(t, second.Items)
	assert.Equal(t, 20, second.Total)
	assert.Equal(t, 1, second.Page)

	for _, p := range []models.Pagination{
		{Page: 1, PageSize: math.MaxInt},
		{Page: math.MaxInt / 10, PageSize: 20},
	} {
		page, err := f.store.ListAssets(ctx, models.AssetFilter{Pagination: p})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 20, page.Total)
	}
}

func TestInspectionLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.store.CreateInspection(ctx, models.InspectionPayload{Memo: "no asset"})
	assert.ErrorIs(t, err, datastore.ErrInvalidInput)

	created, err := f.store.CreateInspection(ctx, models.InspectionPayload{AssetCode: "A00020", Memo: "first"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "ins_A00020_"))
	assert.Equal(t, models.StatusInUse, created.Status)
	assert.False(t, created.Synced)
	assert.False(t, created.IsVerified)

	unchanged, err := f.store.UpdateInspection(ctx, created.ID, models.InspectionPatch{})
	require.NoError(t, err)
	assert.Equal(t, "first", unchanged.Memo)

	patched, err := f.store.UpdateInspection(ctx, created.ID, models.InspectionPatch{
		Status: models.StatusMoving,
		Synced: "true",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusMoving, patched.Status)
	assert.True(t, patched.Synced)
	assert.Equal(t, "first", patched.Memo)

	cleared, err := f.store.UpdateInspection(ctx, created.ID, models.InspectionPatch{Memo: models.NullString()})
	require.NoError(t, err)
	assert.Empty(t, cleared.Memo)

	_, err = f.store.UpdateInspection(ctx, "missing", models.InspectionPatch{})
	assert.ErrorIs(t, err, datastore.ErrNotFound)

	_, err = f.store.CreateInspection(ctx, models.InspectionPayload{ID: created.ID, AssetUID: "A00020"})
	assert.ErrorIs(t, err, datastore.ErrInvalidInput)

	existed, err := f.store.DeleteInspection(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, existed)
	existed, err = f.store.DeleteInspection(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestListInspectionsSyncedOrdering(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i, tc := range []struct {
		scanned string
		synced  string
	}{
		{"2024-03-01T10:00:00Z", "true"},
		{"2024-03-03T10:00:00Z", "false"},
		{"2024-03-02T10:00:00Z", "yes"},
		{"2024-03-04T10:00:00Z", "1"},
	} {
		_, err := f.store.CreateInspection(ctx, models.InspectionPayload{
			ID:        fmt.Sprintf("ins-%d", i),
			AssetUID:  "a00030",
			ScannedAt: models.FlexString(tc.scanned),
			Synced:    models.FlexString(tc.synced),
		})
		require.NoError(t, err)
	}
	_, err := f.store.CreateInspection(ctx, models.InspectionPayload{AssetUID: "OTHER", Synced: "true"})
	require.NoError(t, err)

	synced := true
	page, err := f.store.ListInspections(ctx, models.InspectionFilter{AssetUID: "A00030", Synced: &synced})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, 3, page.Total)
	for i := range page.Items {
		assert.True(t, page.Items[i].Synced)
		if i > 0 {
			assert.False(t, page.Items[i].ScannedAt.After(page.Items[i-1].ScannedAt))
		}
	}
	assert.Equal(t, "ins-3", page.Items[0].ID)

	from := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC)
	bounded, err := f.store.ListInspections(ctx, models.InspectionFilter{AssetUID: "A00030", From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, bounded.Items, 2)
	assert.Equal(t, "ins-1", bounded.Items[0].ID)
	assert.Equal(t, "ins-2", bounded.Items[1].ID)
}

func TestSignatureRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.upsert(t, models.AssetPayload{UID: "A00050"})
	f.putBlob(t, "signature-1.png", "signature bytes")
	sum := sha256.Sum256([]byte("signature bytes"))

	_, err := f.store.RecordSignature(ctx, "A00050", models.SignatureInput{})
	assert.ErrorIs(t, err, datastore.ErrInvalidInput)
	_, err = f.store.RecordSignature(ctx, "A00050", models.SignatureInput{FileName: "absent.png"})
	assert.ErrorIs(t, err, datastore.ErrInvalidInput)
	_, err = f.store.RecordSignature(ctx, "missing", models.SignatureInput{FileName: "signature-1.png"})
	assert.ErrorIs(t, err, datastore.ErrNotFound)

	first, err := f.store.RecordSignature(ctx, "A00050", models.SignatureInput{FileName: "signature-1.png", UserID: "12", UserName: "홍길동"})
	require.NoError(t, err)
	second, err := f.store.RecordSignature(ctx, "A00050", models.SignatureInput{FileName: "signature-1.png"})
	require.NoError(t, err)

	assert.Equal(t, hex.EncodeToString(sum[:]), first.SHA256)
	assert.Equal(t, first.SHA256, second.SHA256)
	assert.NotEqual(t, first.SignatureID, second.SignatureID)

	found, err := f.store.FindSignatureByID(ctx, first.SignatureID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first, *found)

	missing, err := f.store.FindSignatureByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	path, err := f.store.GetSignatureFilePath(ctx, "A00050")
	require.NoError(t, err)
	assert.Equal(t, "signature-1.png", path)
	_, err = f.store.GetSignatureFilePath(ctx, "A99999")
	assert.ErrorIs(t, err, datastore.ErrNotFound)
}

func TestBatchAssignSignature(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, uid := range []string{"A00060", "A00061", "A00062"} {
		f.upsert(t, models.AssetPayload{UID: uid})
	}
	f.putBlob(t, "signature-src.png", "src")
	source, err := f.store.RecordSignature(ctx, "A00060", models.SignatureInput{FileName: "signature-src.png", UserName: "검수자"})
	require.NoError(t, err)

	_, err = f.store.BatchAssignSignature(ctx, []string{"A00061"}, "unknown")
	assert.ErrorIs(t, err, datastore.ErrNotFound)
	_, err = f.store.BatchAssignSignature(ctx, []string{"A00061"}, " ")
	assert.ErrorIs(t, err, datastore.ErrInvalidInput)

	applied, err := f.store.BatchAssignSignature(ctx, []string{"A00061", "INVALID", "", "A00062"}, source.SignatureID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A00061", "A00062"}, applied)

	empty, err := f.store.BatchAssignSignature(ctx, nil, source.SignatureID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	detail, err := f.store.GetVerificationDetail(ctx, "A00062")
	require.NoError(t, err)
	assert.True(t, detail.Signature)
	require.NotNil(t, detail.SignatureMeta)
	assert.Equal(t, source.SHA256, detail.SignatureMeta.SHA256)
	assert.Equal(t, source.StorageLocation, detail.SignatureMeta.StorageLocation)
	assert.Equal(t, "검수자", detail.SignatureMeta.UserName)
	assert.NotEqual(t, source.SignatureID, detail.SignatureMeta.SignatureID)
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.upsert(t, models.AssetPayload{UID: "A00042"})

	page, err := f.store.ListAssets(ctx, models.AssetFilter{Q: "A00042"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, models.StatusInUse, page.Items[0].Status)

	ins, err := f.store.CreateInspection(ctx, models.InspectionPayload{AssetUID: "A00042", Status: models.StatusMoving})
	require.NoError(t, err)

	latest, err := f.store.LatestInspectionByAsset(ctx, "A00042")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, ins.ID, latest.ID)

	detail, err := f.store.GetVerificationDetail(ctx, "A00042")
	require.NoError(t, err)
	assert.False(t, detail.Signature)
	assert.Nil(t, detail.SignatureMeta)
	require.NotNil(t, detail.LatestInspection)
	assert.Equal(t, ins.Status, detail.LatestInspection.Status)
	assert.Len(t, detail.History, 1)

	_, err = f.store.GetVerificationDetail(ctx, "A00043")
	assert.ErrorIs(t, err, datastore.ErrNotFound)
}

func TestListVerifications(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.upsert(t, models.AssetPayload{UID: "C002", Metadata: models.NewMetadata("organization_team", "회계팀")})
	f.upsert(t, models.AssetPayload{UID: "C001", BarcodePhotoURL: "http://img/1.png"})
	f.upsert(t, models.AssetPayload{UID: "D001", Metadata: models.NewMetadata("barcode_photo", "b.png")})

	page, err := f.store.ListVerifications(ctx, models.VerificationFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "C001", page.Items[0].AssetUID)
	assert.True(t, page.Items[0].BarcodePhoto)
	assert.False(t, page.Items[1].BarcodePhoto)
	assert.True(t, page.Items[2].BarcodePhoto)
	assert.Nil(t, page.Items[0].LatestInspection)

	byUID, err := f.store.ListVerifications(ctx, models.VerificationFilter{AssetUID: "c00"})
	require.NoError(t, err)
	assert.Equal(t, 2, byUID.Total)

	byTeam, err := f.store.ListVerifications(ctx, models.VerificationFilter{Team: "회계"})
	require.NoError(t, err)
	require.Len(t, byTeam.Items, 1)
	assert.Equal(t, "C002", byTeam.Items[0].AssetUID)
	assert.Equal(t, "회계팀", byTeam.Items[0].Team)
}

func TestReferencesAndDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.store.users[1] = user{ID: 1, EmployeeID: "B000001", Name: "이서연", Department: datastore.Department{Team: "회계팀"}}
	f.store.users[2] = user{ID: 2, EmployeeID: "P000002", Name: "김도윤", Department: datastore.Department{Team: "검사팀"}}
	f.store.employees["B000001"] = 1
	f.store.employees["P000002"] = 2

	f.upsert(t, models.AssetPayload{UID: "A1", OwnerID: "P000002"})
	f.upsert(t, models.AssetPayload{UID: "A2"})
	f.upsert(t, models.AssetPayload{UID: "B1"})
	_, err := f.store.SoftDeleteAsset(ctx, "B1")
	require.NoError(t, err)
	_, err = f.store.CreateInspection(ctx, models.InspectionPayload{AssetUID: "A1"})
	require.NoError(t, err)
	f.putBlob(t, "s.png", "s")
	_, err = f.store.RecordSignature(ctx, "A2", models.SignatureInput{FileName: "s.png"})
	require.NoError(t, err)

	users, err := f.store.SearchUsers(ctx, models.UserQuery{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "김도윤", users[0].Name)
	assert.Equal(t, "P000002", users[0].ID)
	assert.Equal(t, "2", users[0].NumericID)

	byTeam, err := f.store.SearchUsers(ctx, models.UserQuery{Team: "회계"})
	require.NoError(t, err)
	require.Len(t, byTeam, 1)
	assert.Equal(t, "이서연", byTeam[0].Name)

	refs, err := f.store.SearchAssetRefs(ctx, "a")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "A1", refs[0].UID)
	assert.Equal(t, models.NameUnassigned, refs[0].Name)

	detail, err := f.store.GetAssetDetail(ctx, "A1")
	require.NoError(t, err)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "2", detail.Owner.ID)

	uids, err := f.store.GetAllAssetUIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A2", "B1"}, uids)

	stats, err := f.store.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TotalAssets:     3,
		InspectedAssets: 1,
		InspectionRate:  33.3,
		UnverifiedCount: 2,
		DisposedCount:   1,
	}, stats)
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.upsert(t, models.AssetPayload{UID: "A00070", Vendor: "LG", Metadata: models.NewMetadata("network", "생산망")})
	ins, err := f.store.CreateInspection(ctx, models.InspectionPayload{AssetUID: "A00070", Memo: "ok"})
	require.NoError(t, err)
	f.putBlob(t, "sig.png", "sig")
	sig, err := f.store.RecordSignature(ctx, "A00070", models.SignatureInput{FileName: "sig.png"})
	require.NoError(t, err)
	require.NoError(t, f.store.PersistSignatures(ctx))

	for _, name := range []string{assetsFile, inspectionsFile, signaturesFile, assignmentsFile} {
		_, err := os.Stat(filepath.Join(f.dir, name))
		assert.NoError(t, err, name)
	}

	reloaded := New(f.dir, f.blobs, nil)
	require.NoError(t, reloaded.Initialize(ctx))

	detail, err := reloaded.GetVerificationDetail(ctx, "A00070")
	require.NoError(t, err)
	assert.Equal(t, "LG", detail.Asset.Vendor)
	network, _ := detail.Asset.Metadata.Get("network")
	assert.Equal(t, "생산망", network)
	require.Len(t, detail.History, 1)
	assert.Equal(t, ins.ID, detail.History[0].ID)
	assert.Equal(t, "ok", detail.History[0].Memo)
	require.NotNil(t, detail.SignatureMeta)
	assert.Equal(t, sig.SignatureID, detail.SignatureMeta.SignatureID)
}

func TestInitializeReadsGeneratorFixtures(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write(usersFile, `[{"id": 1, "employee_id": "B000001", "employee_name": "박지훈",
		"organization_hq": "경영본부", "organization_dept": null, "organization_team": "급여팀",
		"organization_part": null, "organization_etc": "팀장"}]`)
	write(assetsFile, `[{"id": 1, "asset_uid": "A12345", "name": "박지훈", "assets_status": "이동",
		"category": "IT장비", "serial_number": "SN-000000001", "model_name": "HP Pro 100",
		"vendor": "HP", "network": "사내망", "mac_address": null, "building": "본사A동",
		"floor": "2층", "location_row": 3, "location_col": 7, "created_at": "2024-01-01T00:00:00.000Z",
		"updated_at": "2024-02-01T00:00:00.000Z", "user_id": 1}]`)
	write(inspectionsFile, `[{"id": 1, "asset_id": 1, "user_id": 1, "inspector_name": "최하준",
		"user_team": "급여팀", "asset_code": "A12345", "asset_type": "데스크탑",
		"inspection_count": 1, "inspection_date": "2024-02-02T03:04:05.000Z"}]`)

	store := New(dir, blobprovider.NewMemory(), nil)
	require.NoError(t, store.Initialize(context.Background()))

	detail, err := store.GetAssetDetail(context.Background(), "A12345")
	require.NoError(t, err)
	assert.Equal(t, "IT장비", detail.AssetType)
	assert.Equal(t, models.StatusMoving, detail.Status)
	assert.Equal(t, "본사A동 2층 R3 C7", detail.Location)
	assert.Equal(t, "급여팀", detail.Organization)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "경영본부 > 급여팀", detail.Owner.Department)
	assert.Equal(t, []string{"network"}, detail.Metadata.Keys())

	require.Len(t, detail.History, 1)
	assert.Equal(t, "1", detail.History[0].ID)
	assert.Equal(t, models.StatusInUse, detail.History[0].Status)
	assert.Equal(t, "1", detail.History[0].UserID)
}

func TestEmptyDirKeepsNoFiles(t *testing.T) {
	store := New("", blobprovider.NewMemory(), nil)
	require.NoError(t, store.Initialize(context.Background()))
	_, err := store.UpsertAsset(context.Background(), models.AssetPayload{UID: "X1"})
	require.NoError(t, err)
	assert.NoError(t, store.PersistSignatures(context.Background()))
}

func TestConcurrentOperations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	var ticks atomic.Int64
	base := f.now
	f.store.clock = func() time.Time { return base.Add(time.Duration(ticks.Add(1)) * time.Millisecond) }

	f.putBlob(t, "signature-src.png", "png")
	f.upsert(t, models.AssetPayload{UID: "SRC"})
	source, err := f.store.RecordSignature(ctx, "SRC", models.SignatureInput{FileName: "signature-src.png"})
	require.NoError(t, err)

	const workers = 8
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			uid := fmt.Sprintf("C%05d", w)
			if _, err := f.store.UpsertAsset(gctx, models.AssetPayload{UID: uid, Name: "동시성"}); err != nil {
				return err
			}
			if _, err := f.store.CreateInspection(gctx, models.InspectionPayload{AssetUID: uid}); err != nil {
				return err
			}
			if _, err := f.store.ListVerifications(gctx, models.VerificationFilter{}); err != nil {
				return err
			}
			if _, err := f.store.BatchAssignSignature(gctx, []string{uid}, source.SignatureID); err != nil {
				return err
			}
			return f.store.PersistSignatures(gctx)
		})
	}
	require.NoError(t, g.Wait())

	page, err := f.store.ListVerifications(ctx, models.VerificationFilter{Pagination: models.Pagination{PageSize: 50}})
	require.NoError(t, err)
	assert.Equal(t, workers+1, page.Total)
	for _, item := range page.Items {
		assert.True(t, item.Signature, item.AssetUID)
	}

	inspections, err := f.store.ListInspections(ctx, models.InspectionFilter{})
	require.NoError(t, err)
	assert.Equal(t, workers, inspections.Total)
}
