package alloc

import "testing"

func TestBitmapFlipAndFindFirstZero(t *testing.T) {
	var bm bitmap256
	if got := bm.findFirstZero(); got != 0 {
		t.Errorf("expected first zero 0 on empty bitmap, got %d", got)
	}

	bm.flip(0)
	if got := bm.findFirstZero(); got != 1 {
		t.Errorf("expected first zero 1 after flipping bit 0, got %d", got)
	}

	bm.flip(0)
	if got := bm.findFirstZero(); got != 0 {
		t.Errorf("expected first zero 0 after flipping bit 0 back, got %d", got)
	}
}

func TestBitmapFindFirstZeroCrossesLanes(t *testing.T) {
	var bm bitmap256
	for i := 0; i < 130; i++ {
		bm.flip(i)
	}
	if got := bm.findFirstZero(); got != 130 {
		t.Errorf("expected first zero at 130, got %d", got)
	}
}

func TestBitmapEqualAndAllBusy(t *testing.T) {
	var bm bitmap256
	for i := 0; i < 256; i++ {
		bm.flip(i)
	}
	if !bm.equal(allBusy) {
		t.Error("bitmap with every bit flipped should equal allBusy")
	}
	if got := bm.findFirstZero(); got != 256 {
		t.Errorf("expected 256 (no free slot) on a fully busy bitmap, got %d", got)
	}
}

func TestBitmapEmptyPattern(t *testing.T) {
	ep := emptyPattern(62)
	partial := ep
	for i := 0; i < 62; i++ {
		if partial.equal(allBusy) {
			t.Fatalf("emptyPattern(62) should not already equal allBusy before bit %d is set", i)
		}
		partial.flip(i)
	}

	full := ep
	for i := 0; i < 62; i++ {
		full.flip(i)
	}
	if !full.equal(allBusy) {
		t.Error("flipping every real slot of emptyPattern(62) should produce allBusy")
	}

	if got := ep.findFirstZero(); got != 0 {
		t.Errorf("emptyPattern's first free slot should be 0, got %d", got)
	}
}

func TestBitmapAndOrNot(t *testing.T) {
	a := bitmap256{w: [4]uint64{0, 0, 0, 0b1010}}
	b := bitmap256{w: [4]uint64{0, 0, 0, 0b0110}}

	and := a
	and.and(b)
	if and.w[3] != 0b0010 {
		t.Errorf("and: expected 0b0010, got %b", and.w[3])
	}

	or := a
	or.or(b)
	if or.w[3] != 0b1110 {
		t.Errorf("or: expected 0b1110, got %b", or.w[3])
	}

	not := a
	not.not()
	if not.w[3] != ^uint64(0b1010) {
		t.Errorf("not: expected complement of 0b1010, got %b", not.w[3])
	}
}

func TestLaneAndShiftCoversFullRange(t *testing.T) {
	seen := map[[2]int]bool{}
	for i := 0; i < 256; i++ {
		lane, shift := laneAndShift(i)
		if lane < 0 || lane > 3 || shift < 0 || shift > 63 {
			t.Fatalf("index %d produced out-of-range lane/shift %d/%d", i, lane, shift)
		}
		key := [2]int{lane, shift}
		if seen[key] {
			t.Fatalf("index %d collided with an earlier index at lane/shift %d/%d", i, lane, shift)
		}
		seen[key] = true
	}
}
