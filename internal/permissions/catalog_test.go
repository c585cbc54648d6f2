package permissions

import (
	"reflect"
	"testing"
)

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	entries := catalog.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 catalog entries, got %d", len(entries))
	}

	// Declaration order must be preserved
	wantNames := []string{"read", "write", "manage"}
	for i, name := range wantNames {
		if entries[i].Name != name {
			t.Errorf("entry %d: expected name %q, got %q", i, name, entries[i].Name)
		}
	}
}

func TestCatalog_ByName(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	entry, ok := catalog.ByName("write")
	if !ok {
		t.Fatal("ByName(write) not found")
	}
	if entry.Value != Write {
		t.Errorf("write entry value = %b, want %b", entry.Value, Write)
	}

	if _, ok := catalog.ByName("admin"); ok {
		t.Error("ByName(admin) should not be found")
	}
}

func TestCatalog_LabelsFor(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	tests := []struct {
		name  string
		value Value
		want  []string
	}{
		{"none", None, []string{}},
		{"read", Read, []string{"Read"}},
		{"write implies read", Write, []string{"Read", "Write"}},
		{"manage implies all", Manage, []string{"Read", "Write", "Manage"}},
		// Owner renders the full catalog label sequence, independent of
		// which individual bits happen to be set.
		{"owner", Owner, []string{"Read", "Write", "Manage"}},
		{"combined grants", Combine(Read, Write), []string{"Read", "Write"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.LabelsFor(tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LabelsFor(%b) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestCatalog_LabelsFor_Deterministic(t *testing.T) {
	catalog, err := NewCatalog()
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	first := catalog.LabelsFor(Manage)
	for i := 0; i < 10; i++ {
		if got := catalog.LabelsFor(Manage); !reflect.DeepEqual(got, first) {
			t.Fatalf("LabelsFor not deterministic: %v vs %v", got, first)
		}
	}
}
