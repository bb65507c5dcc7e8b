package postgres

import "testing"

func TestLimitArgUnsetMeansFullRead(t *testing.T) {
	// Bucket counts are computed from full reads; an unset limit must
	// translate to LIMIT NULL, never a default cap.
	if got := limitArg(0); got != nil {
		t.Fatalf("expected nil for unset limit, got %v", got)
	}
	if got := limitArg(-1); got != nil {
		t.Fatalf("expected nil for negative limit, got %v", got)
	}
}

func TestLimitArgCapsCallerSuppliedLimits(t *testing.T) {
	if got := limitArg(10); got != 10 {
		t.Fatalf("expected 10, got %v", got)
	}
	if got := limitArg(maxListLimit); got != maxListLimit {
		t.Fatalf("expected %d, got %v", maxListLimit, got)
	}
	if got := limitArg(maxListLimit + 1); got != maxListLimit {
		t.Fatalf("expected cap at %d, got %v", maxListLimit, got)
	}
}
