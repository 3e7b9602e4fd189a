package ledger_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"aifm/internal/ledger"
	"aifm/internal/testsupport"
)

func openLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openLedger(t)
	ctx := context.Background()

	first := ledger.Record{
		Operation:       ledger.OpBuild,
		ContainerPath:   "/tmp/song.aifm",
		PayloadFilename: "song.wav",
		SHA256Hex:       "abc123",
		Title:           "Test",
		CreatedAt:       time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC),
	}
	second := ledger.Record{
		Operation:       ledger.OpVerify,
		ContainerPath:   "/tmp/song.aifm",
		PayloadFilename: "song.wav",
		SHA256Hex:       "abc123",
		Verdict:         "verified",
		Title:           "Test",
	}

	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("append build: %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("append verify: %v", err)
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Operation != ledger.OpVerify || records[1].Operation != ledger.OpBuild {
		t.Fatalf("expected newest first, got %s then %s", records[0].Operation, records[1].Operation)
	}
	if records[0].Verdict != "verified" {
		t.Fatalf("verdict lost: %+v", records[0])
	}
	if !records[1].CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("timestamp mismatch: got %v want %v", records[1].CreatedAt, first.CreatedAt)
	}
	if records[0].CreatedAt.IsZero() {
		t.Fatal("expected defaulted created_at on second record")
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openLedger(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		record := ledger.Record{
			Operation:       ledger.OpBuild,
			ContainerPath:   "/tmp/out.aifm",
			PayloadFilename: "song.wav",
			SHA256Hex:       "abc123",
		}
		if err := store.Append(ctx, record); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := ledger.Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	record := ledger.Record{
		Operation:       ledger.OpBuild,
		ContainerPath:   "/tmp/out.aifm",
		PayloadFilename: "song.wav",
		SHA256Hex:       "abc123",
	}
	if err := store.Append(context.Background(), record); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := ledger.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	records, err := reopened.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected history to survive reopen, got %d records", len(records))
	}
}
