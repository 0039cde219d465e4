package cart

import (
	"testing"
	"time"
)

const session = "sess-1"

func riceLine() Line {
	return Line{ID: "rice-A", ItemID: 12, Name: "Yangzhou Fried Rice (Full)", UnitPrice: 850}
}

func TestAddSameLineTwiceIncrementsInsteadOfDuplicating(t *testing.T) {
	store := NewStore(time.Hour)

	store.AddItem(session, riceLine())
	store.AddItem(session, riceLine())

	snap := store.Get(session)
	if len(snap.Lines) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(snap.Lines))
	}
	if snap.Lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", snap.Lines[0].Quantity)
	}
}

func TestIncrementTwiceTriplesQuantity(t *testing.T) {
	store := NewStore(time.Hour)

	store.AddItem(session, riceLine())
	store.IncrementItem(session, "rice-A")
	store.IncrementItem(session, "rice-A")

	snap := store.Get(session)
	if snap.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", snap.Lines[0].Quantity)
	}
	if snap.Subtotal != 2550 {
		t.Fatalf("expected subtotal 2550, got %d", snap.Subtotal)
	}
}

func TestDecrementToZeroRemovesLine(t *testing.T) {
	store := NewStore(time.Hour)

	store.AddItem(session, riceLine())
	store.DecrementItem(session, "rice-A")

	snap := store.Get(session)
	if len(snap.Lines) != 0 {
		t.Fatalf("line should be removed at quantity zero, got %+v", snap.Lines)
	}
}

func TestIncrementAndDecrementAbsentLineAreNoops(t *testing.T) {
	store := NewStore(time.Hour)
	store.AddItem(session, riceLine())

	store.IncrementItem(session, "ghost")
	store.DecrementItem(session, "ghost")
	store.RemoveItem(session, "ghost")

	snap := store.Get(session)
	if len(snap.Lines) != 1 || snap.Lines[0].Quantity != 1 {
		t.Fatalf("absent-line operations must not disturb the cart, got %+v", snap.Lines)
	}
}

func TestItemCountAlwaysMatchesQuantitySum(t *testing.T) {
	store := NewStore(time.Hour)

	noodles := Line{ID: "dan-dan", ItemID: 4, Name: "Dan Dan Noodles", UnitPrice: 650}
	ops := []func(){
		func() { store.AddItem(session, riceLine()) },
		func() { store.AddItem(session, noodles) },
		func() { store.IncrementItem(session, "dan-dan") },
		func() { store.AddItem(session, riceLine()) },
		func() { store.DecrementItem(session, "rice-A") },
		func() { store.IncrementItem(session, "rice-A") },
		func() { store.RemoveItem(session, "dan-dan") },
		func() { store.AddItem(session, noodles) },
	}

	for i, op := range ops {
		op()
		snap := store.Get(session)
		sum := 0
		for _, line := range snap.Lines {
			if line.Quantity <= 0 {
				t.Fatalf("op %d: line %q has quantity %d", i, line.ID, line.Quantity)
			}
			sum += line.Quantity
		}
		if snap.ItemCount != sum {
			t.Fatalf("op %d: item count %d does not match quantity sum %d", i, snap.ItemCount, sum)
		}
	}
}

func TestSubtotalIsIdempotentAcrossReads(t *testing.T) {
	store := NewStore(time.Hour)
	store.AddItem(session, riceLine())
	store.IncrementItem(session, "rice-A")

	first := store.Get(session).Subtotal
	second := store.Get(session).Subtotal
	if first != second || first != 1700 {
		t.Fatalf("expected stable subtotal 1700, got %d then %d", first, second)
	}
}

func TestInsertionOrderPreserved(t *testing.T) {
	store := NewStore(time.Hour)
	store.AddItem(session, Line{ID: "b", ItemID: 2, Name: "B", UnitPrice: 100})
	store.AddItem(session, Line{ID: "a", ItemID: 1, Name: "A", UnitPrice: 100})
	store.AddItem(session, Line{ID: "b", ItemID: 2, Name: "B", UnitPrice: 100})

	snap := store.Get(session)
	if snap.Lines[0].ID != "b" || snap.Lines[1].ID != "a" {
		t.Fatalf("insertion order not preserved: %+v", snap.Lines)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewStore(time.Hour)
	store.AddItem("one", riceLine())

	if snap := store.Get("two"); len(snap.Lines) != 0 {
		t.Fatalf("sessions must not share carts, got %+v", snap.Lines)
	}
}

func TestPruneDropsIdleCarts(t *testing.T) {
	store := NewStore(time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	store.AddItem("stale", riceLine())
	current = current.Add(2 * time.Minute)
	store.AddItem("fresh", riceLine())

	store.prune()

	if _, ok := store.carts["stale"]; ok {
		t.Fatal("stale cart should be pruned")
	}
	if _, ok := store.carts["fresh"]; !ok {
		t.Fatal("fresh cart should survive")
	}
}
