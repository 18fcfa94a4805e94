package recon

import (
	"testing"
	"time"

	"tradelog/internal/models"
)

func at(minutes int) time.Time {
	return testT0.Add(time.Duration(minutes) * time.Minute)
}

func TestClassifyFills_RunningPosition(t *testing.T) {
	fills := []models.Execution{
		optionFill(1, models.SideBuy, "10", "2.00", "100", "", at(0)),  // flat -> open
		optionFill(2, models.SideBuy, "5", "2.10", "100", "", at(1)),   // adds -> open
		optionFill(3, models.SideSell, "4", "2.50", "100", "", at(2)),  // reduces -> close
		optionFill(4, models.SideSell, "11", "2.60", "100", "", at(3)), // reduces -> close
		optionFill(5, models.SideSell, "3", "2.70", "100", "", at(4)),  // flat again -> open (short)
	}
	got := ClassifyFills(fills)
	want := []bool{true, true, false, false, true}
	for i, cf := range got {
		if cf.Opening != want[i] {
			t.Fatalf("fill %d: opening=%v want=%v", i, cf.Opening, want[i])
		}
	}
}

func TestClassifyFills_SellWhenFlatOpensShort(t *testing.T) {
	fills := []models.Execution{
		optionFill(1, models.SideSell, "5", "1.50", "100", "", at(0)),
		optionFill(2, models.SideBuy, "5", "0.50", "100", "", at(1)),
	}
	got := ClassifyFills(fills)
	if !got[0].Opening {
		t.Fatalf("sell while flat should open a short position")
	}
	if got[1].Opening {
		t.Fatalf("buy against a short position should close it")
	}
}

// An explicit broker indicator always beats the running-position inference,
// even when the two disagree.
func TestClassifyFills_ExplicitIndicatorWins(t *testing.T) {
	fills := []models.Execution{
		// Inference would call this opening (flat position); broker says close.
		optionFill(1, models.SideSell, "10", "2.00", "100", "C", at(0)),
		// Inference would call this closing (opposes short); broker says open.
		optionFill(2, models.SideBuy, "10", "2.10", "100", "O", at(1)),
	}
	got := ClassifyFills(fills)
	if got[0].Opening {
		t.Fatalf("explicit C overridden by inference")
	}
	if !got[1].Opening {
		t.Fatalf("explicit O overridden by inference")
	}
}

func TestClassifyFills_PartialCloseThenReopen(t *testing.T) {
	fills := []models.Execution{
		optionFill(1, models.SideBuy, "10", "2.00", "100", "", at(0)),
		optionFill(2, models.SideSell, "4", "2.50", "100", "", at(1)),
		optionFill(3, models.SideBuy, "6", "1.90", "100", "", at(2)),
	}
	got := ClassifyFills(fills)
	if !got[0].Opening || got[1].Opening || !got[2].Opening {
		t.Fatalf("want open/close/open, got %v/%v/%v", got[0].Opening, got[1].Opening, got[2].Opening)
	}
}
