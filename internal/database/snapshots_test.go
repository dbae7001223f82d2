package database

import (
	"errors"
	"reflect"
	"testing"
)

func TestSaveAndLoadSnapshot(t *testing.T) {
	db := openTestDB(t)

	data := []byte(`{"version":1,"portals":[]}`)
	if err := db.SaveSnapshot("default", 1, data); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}

	rec, err := db.LoadSnapshot("default")
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	if string(rec.Data) != string(data) {
		t.Errorf("Data = %s, want %s", rec.Data, data)
	}
	if rec.Version != 1 || rec.Slot != "default" {
		t.Errorf("record = %+v", rec)
	}
	if rec.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}
}

func TestSaveSnapshotOverwrites(t *testing.T) {
	db := openTestDB(t)

	db.SaveSnapshot("slot", 1, []byte("first"))
	if err := db.SaveSnapshot("slot", 2, []byte("second")); err != nil {
		t.Fatalf("second SaveSnapshot() error: %v", err)
	}

	rec, err := db.LoadSnapshot("slot")
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	if string(rec.Data) != "second" || rec.Version != 2 {
		t.Errorf("record = %q v%d, want second v2", rec.Data, rec.Version)
	}
}

func TestLoadSnapshotMissing(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.LoadSnapshot("nothing"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("LoadSnapshot(missing) error = %v, want ErrNoSnapshot", err)
	}
}

func TestSnapshotSlots(t *testing.T) {
	db := openTestDB(t)

	for _, slot := range []string{"b", "a", "c"} {
		if err := db.SaveSnapshot(slot, 1, []byte("{}")); err != nil {
			t.Fatalf("SaveSnapshot(%q) error: %v", slot, err)
		}
	}
	if err := db.DeleteSnapshot("b"); err != nil {
		t.Fatalf("DeleteSnapshot() error: %v", err)
	}
	if err := db.DeleteSnapshot("missing"); err != nil {
		t.Errorf("DeleteSnapshot(missing) error: %v", err)
	}

	slots, err := db.ListSnapshotSlots()
	if err != nil {
		t.Fatalf("ListSnapshotSlots() error: %v", err)
	}
	if want := []string{"a", "c"}; !reflect.DeepEqual(slots, want) {
		t.Errorf("ListSnapshotSlots() = %v, want %v", slots, want)
	}
}
