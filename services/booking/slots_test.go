package booking

import (
	"reflect"
	"testing"
)

func TestGenerateSlotsStandardDay(t *testing.T) {
	slots := GenerateSlots("2025-03-10", "1", DefaultWorkingHours, DefaultSlotMinutes)

	if len(slots) != 24 {
		t.Fatalf("expected 24 slots for a 9:00-21:00 day at 30 min, got %d", len(slots))
	}
	if slots[0].Start != 9*60 {
		t.Errorf("first slot should start at 09:00 (540), got %d", slots[0].Start)
	}
	if last := slots[len(slots)-1]; last.End != 21*60 {
		t.Errorf("last slot should end at 21:00 (1260), got %d", last.End)
	}
}

func TestGenerateSlotsTiling(t *testing.T) {
	slots := GenerateSlots("2025-03-10", "2", WorkingHours{StartHour: 10, EndHour: 18}, 20)

	for i, s := range slots {
		if s.End-s.Start != 20 {
			t.Errorf("slot %d has length %d, want 20", i, s.End-s.Start)
		}
		if s.ProviderID != "2" || s.Date != "2025-03-10" {
			t.Errorf("slot %d carries wrong identity: %+v", i, s)
		}
		if !s.Available {
			t.Errorf("slot %d should be generated available", i)
		}
		if i > 0 {
			if slots[i-1].End != s.Start {
				t.Errorf("gap or overlap between slot %d and %d: end %d, next start %d",
					i-1, i, slots[i-1].End, s.Start)
			}
		}
	}
}

func TestGenerateSlotsEmptyWindow(t *testing.T) {
	if got := GenerateSlots("2025-03-10", "1", WorkingHours{StartHour: 18, EndHour: 18}, 30); len(got) != 0 {
		t.Fatalf("equal start and end hours should yield no slots, got %d", len(got))
	}
	if got := GenerateSlots("2025-03-10", "1", WorkingHours{StartHour: 20, EndHour: 9}, 30); len(got) != 0 {
		t.Fatalf("inverted window should yield no slots, got %d", len(got))
	}
}

func TestGenerateSlotsInvalidLength(t *testing.T) {
	for _, minutes := range []int{0, -15, 7, 45} {
		if got := GenerateSlots("2025-03-10", "1", DefaultWorkingHours, minutes); got != nil {
			t.Errorf("slot length %d should yield nil, got %d slots", minutes, len(got))
		}
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	a := GenerateSlots("2025-03-10", "3", DefaultWorkingHours, 30)
	b := GenerateSlots("2025-03-10", "3", DefaultWorkingHours, 30)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs should produce identical slot sequences")
	}
}
