package importer

import "testing"

func TestParseLine_PadsShortLines(t *testing.T) {
	rec := ParseLine("KA1AAA|A", 4)
	if len(rec) != 4 {
		t.Fatalf("expected 4 values, got %d", len(rec))
	}
	if rec[0] != "KA1AAA" || rec[1] != "A" {
		t.Fatalf("unexpected leading values: %v", rec)
	}
	if rec[2] != nil || rec[3] != nil {
		t.Fatalf("expected trailing NULL padding, got %v", rec)
	}
}

func TestParseLine_TruncatesLongLines(t *testing.T) {
	rec := ParseLine("a|b|c|d|e|f", 3)
	if len(rec) != 3 {
		t.Fatalf("expected 3 values, got %d", len(rec))
	}
	if rec[0] != "a" || rec[1] != "b" || rec[2] != "c" {
		t.Fatalf("unexpected values after truncation: %v", rec)
	}
}

func TestParseLine_TrimsAndNullsEmptyFields(t *testing.T) {
	rec := ParseLine("  KA1AAA |   | \t |E", 4)
	if rec[0] != "KA1AAA" {
		t.Fatalf("expected trimmed value, got %v", rec[0])
	}
	if rec[1] != nil || rec[2] != nil {
		t.Fatalf("expected whitespace-only fields to be NULL, got %v", rec)
	}
	if rec[3] != "E" {
		t.Fatalf("expected E, got %v", rec[3])
	}
}

func TestParseLine_NoTypeCoercion(t *testing.T) {
	rec := ParseLine("0001|12.5", 2)
	if rec[0] != "0001" || rec[1] != "12.5" {
		t.Fatalf("expected values kept as text, got %v", rec)
	}
}
