package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/ytget/yt-snippet/internal/model"
	"github.com/ytget/yt-snippet/internal/storage"
)

var quietLogger = log.New(io.Discard, "", 0)

func record(i int) model.HistoryRecord {
	return model.HistoryRecord{
		ID:        fmt.Sprintf("job-%d", i),
		Title:     fmt.Sprintf("Video %d", i),
		Format:    model.FormatMP3,
		Timestamp: "10:00:00 AM",
	}
}

type failingStorage struct{}

func (failingStorage) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingStorage) Set(string, string) error         { return errors.New("disk gone") }
func (failingStorage) Remove(string) error              { return errors.New("disk gone") }

func TestStore_AppendKeepsNewestFirstAndCapacity(t *testing.T) {
	mem := storage.NewMemory()
	store := NewStore(mem, quietLogger)

	for i := 1; i <= 120; i++ {
		if err := store.Append(record(i)); err != nil {
			t.Fatalf("Append(%d) failed: %v", i, err)
		}
		if store.Len() > Capacity {
			t.Fatalf("history grew to %d entries", store.Len())
		}
		if got := store.Records()[0].ID; got != fmt.Sprintf("job-%d", i) {
			t.Fatalf("newest entry should be first, got %s", got)
		}
	}

	records := store.Records()
	if len(records) != Capacity {
		t.Fatalf("expected %d records, got %d", Capacity, len(records))
	}
	if records[Capacity-1].ID != "job-71" {
		t.Errorf("oldest kept entry should be job-71, got %s", records[Capacity-1].ID)
	}

	raw, ok, _ := mem.Get(StorageKey)
	if !ok {
		t.Fatal("history was not persisted")
	}
	var persisted []model.HistoryRecord
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("persisted payload is not JSON: %v", err)
	}
	if len(persisted) != Capacity || persisted[0].ID != "job-120" {
		t.Errorf("persisted list mismatch: len=%d first=%s", len(persisted), persisted[0].ID)
	}
}

func TestStore_LoadRoundTrip(t *testing.T) {
	mem := storage.NewMemory()
	first := NewStore(mem, quietLogger)
	_ = first.Append(record(1))
	withName := record(2)
	withName.Filename = "custom"
	_ = first.Append(withName)

	second := NewStore(mem, quietLogger)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	records := second.Records()
	if len(records) != 2 || records[0].Filename != "custom" || records[1].ID != "job-1" {
		t.Errorf("unexpected loaded records: %+v", records)
	}
}

func TestStore_LoadCorruptPayloadIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"id":"x"}`},
		{"missing id", `[{"title":"t","format":"mp3","timestamp":"now"}]`},
		{"unknown format", `[{"id":"1","title":"t","format":"flac","timestamp":"now"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storage.NewMemory()
			store := NewStore(mem, quietLogger)
			_ = store.Append(record(99))
			_ = mem.Set(StorageKey, tt.payload)

			if err := store.Load(); err != nil {
				t.Fatalf("corrupt payload must not be fatal: %v", err)
			}
			if store.Len() != 0 {
				t.Errorf("expected empty history, got %d records", store.Len())
			}
		})
	}
}

func TestStore_LoadTruncatesOversizedPayload(t *testing.T) {
	var records []model.HistoryRecord
	for i := 0; i < Capacity+10; i++ {
		records = append(records, record(i))
	}
	data, _ := json.Marshal(records)

	mem := storage.NewMemory()
	_ = mem.Set(StorageKey, string(data))

	store := NewStore(mem, quietLogger)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Len() != Capacity {
		t.Errorf("expected %d records, got %d", Capacity, store.Len())
	}
}

func TestStore_LoadStorageFailure(t *testing.T) {
	store := NewStore(failingStorage{}, quietLogger)
	if err := store.Load(); err == nil {
		t.Error("expected storage failure to be returned")
	}
	if err := store.Append(record(1)); err == nil {
		t.Error("expected persist failure to be returned")
	}
}

func TestStore_ClearRequiresConfirmation(t *testing.T) {
	mem := storage.NewMemory()
	store := NewStore(mem, quietLogger)
	_ = store.Append(record(1))

	cleared, err := store.Clear(func() bool { return false })
	if err != nil || cleared {
		t.Fatalf("declined clear should be a no-op, got cleared=%v err=%v", cleared, err)
	}
	if store.Len() != 1 {
		t.Fatal("history should survive a declined clear")
	}

	if cleared, _ := store.Clear(nil); cleared {
		t.Fatal("clear without a confirmation step must not clear")
	}

	cleared, err = store.Clear(func() bool { return true })
	if err != nil || !cleared {
		t.Fatalf("confirmed clear failed: cleared=%v err=%v", cleared, err)
	}
	if store.Len() != 0 {
		t.Error("history should be empty after clear")
	}
	if _, ok, _ := mem.Get(StorageKey); ok {
		t.Error("persisted copy should be removed")
	}
}

func TestStore_RecordsReturnsCopy(t *testing.T) {
	store := NewStore(storage.NewMemory(), quietLogger)
	_ = store.Append(record(1))

	records := store.Records()
	records[0].Title = "mutated"

	if store.Records()[0].Title != "Video 1" {
		t.Error("Records must return a copy")
	}
}
