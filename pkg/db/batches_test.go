package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
)

func TestBatchRunLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	snapID, err := db.SaveAuditSnapshot(ctx, testSnapshot("https://example.es/", 70, time.Now()))
	if err != nil {
		t.Fatalf("SaveAuditSnapshot() error = %v", err)
	}

	batchID, err := db.CreateBatchRun(ctx, 2)
	if err != nil {
		t.Fatalf("CreateBatchRun() error = %v", err)
	}

	results := []models.BatchSummary{
		{URL: "https://example.es/", Success: true, OverallScore: 70, SnapshotID: snapID},
		{URL: "https://down.es/", Success: false, Error: "connection refused"},
	}
	for i, r := range results {
		if err := db.InsertBatchResult(ctx, batchID, i, r); err != nil {
			t.Fatalf("InsertBatchResult() error = %v", err)
		}
	}
	if err := db.UpdateBatchRunStats(ctx, batchID, 1, 1); err != nil {
		t.Fatalf("UpdateBatchRunStats() error = %v", err)
	}

	run, err := db.GetBatchRun(ctx, batchID)
	if err != nil {
		t.Fatalf("GetBatchRun() error = %v", err)
	}
	if run.URLCount != 2 || run.SuccessCount != 1 || run.FailedCount != 1 {
		t.Errorf("run = %+v, want 2/1/1", run)
	}

	got, err := db.GetBatchResults(ctx, batchID)
	if err != nil {
		t.Fatalf("GetBatchResults() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetBatchResults() returned %d rows, want 2", len(got))
	}
	for i := range results {
		if got[i] != results[i] {
			t.Errorf("result %d = %+v, want %+v", i, got[i], results[i])
		}
	}
}

func TestInsertBatchResult_UnknownSnapshot(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	batchID, _ := db.CreateBatchRun(ctx, 1)
	err := db.InsertBatchResult(ctx, batchID, 0, models.BatchSummary{URL: "https://example.es/", Success: true, SnapshotID: "missing"})
	if err == nil {
		t.Error("InsertBatchResult() with unknown snapshot should violate the foreign key")
	}
}

func TestListBatchRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	for _, n := range []int{1, 2, 3} {
		if _, err := db.CreateBatchRun(ctx, n); err != nil {
			t.Fatalf("CreateBatchRun() error = %v", err)
		}
	}

	runs, err := db.ListBatchRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListBatchRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListBatchRuns(2) returned %d runs", len(runs))
	}
	if runs[0].URLCount != 3 || runs[1].URLCount != 2 {
		t.Errorf("runs not newest first: %+v", runs)
	}

	all, _ := db.ListBatchRuns(ctx, 0)
	if len(all) != 3 {
		t.Errorf("ListBatchRuns(0) returned %d runs, want 3", len(all))
	}

	if _, err := db.GetBatchRun(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBatchRun(999) error = %v, want ErrNotFound", err)
	}
}
