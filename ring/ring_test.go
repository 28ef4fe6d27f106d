package ring

import "testing"

func TestNewPanicsOnNonPositiveCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("New(%d) did not panic", c)
				}
			}()
			New[int](c)
		}()
	}
}

func TestFIFOOrderAndWraparound(t *testing.T) {
	b := New[int](3)
	if b.Capacity() != 3 {
		t.Fatalf("Capacity() = %d, want 3", b.Capacity())
	}

	b.Add(1)
	b.Add(2)
	b.Add(3)
	if !b.Full() {
		t.Fatal("buffer should be full")
	}

	if v := b.Remove(); v != 1 {
		t.Fatalf("Remove() = %d, want 1", v)
	}
	// Wrap around: slot 0 is free again.
	b.Add(4)
	if !b.Full() {
		t.Fatal("buffer should be full after wraparound add")
	}

	for _, want := range []int{2, 3, 4} {
		if v := b.Remove(); v != want {
			t.Fatalf("Remove() = %d, want %d", v, want)
		}
	}
	if !b.Empty() {
		t.Fatal("buffer should be empty")
	}
}

func TestAddOnFullPanics(t *testing.T) {
	b := New[int](1)
	b.Add(1)
	defer func() {
		if recover() == nil {
			t.Fatal("Add on full buffer did not panic")
		}
	}()
	b.Add(2)
}

func TestRemoveOnEmptyPanics(t *testing.T) {
	b := New[int](1)
	defer func() {
		if recover() == nil {
			t.Fatal("Remove on empty buffer did not panic")
		}
	}()
	b.Remove()
}

func TestRemoveZeroesVacatedSlot(t *testing.T) {
	b := New[*int](1)
	v := 42
	b.Add(&v)
	if b.slots[0] == nil {
		t.Fatal("precondition: slot should hold the pointer before Remove")
	}
	_ = b.Remove()
	if b.slots[0] != nil {
		t.Fatal("Remove should zero the vacated slot so its value can be collected")
	}
}
