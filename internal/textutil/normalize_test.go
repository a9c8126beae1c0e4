package textutil

import "testing"

func TestFold(t *testing.T) {
	if got := Fold("The GODFATHER: Part II"); got != "the godfather: part ii" {
		t.Fatalf("Fold() = %q", got)
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("The Dark Knight", "DARK") {
		t.Fatal("expected case-insensitive containment")
	}
	if ContainsFold("The Dark Knight", "light") {
		t.Fatal("unexpected containment")
	}
}
