package analytics

import (
	"reflect"
	"testing"
)

func TestWordFrequency(t *testing.T) {
	a := &Analytics{}
	got := a.WordFrequency("Tax advisory, TAX planning and the tax return. 2024 x")
	want := map[string]int{"tax": 3, "advisory": 1, "planning": 1, "return": 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WordFrequency() = %v, want %v", got, want)
	}
}

func TestWordFrequency_SpanishAndCatalan(t *testing.T) {
	a := &Analytics{}
	got := a.WordFrequency("Asesoría fiscal para las empresas. Assessorament fiscal per a les empreses.")
	if got["fiscal"] != 2 {
		t.Errorf("fiscal = %d, want 2", got["fiscal"])
	}
	if got["asesoría"] != 1 {
		t.Errorf("accented word asesoría = %d, want 1", got["asesoría"])
	}
	for _, stop := range []string{"para", "las", "per", "les"} {
		if _, ok := got[stop]; ok {
			t.Errorf("stopword %q was counted", stop)
		}
	}
}

func TestIsStopword(t *testing.T) {
	tests := map[string]bool{"The": true, "pero": true, "perquè": true, "audit": false}
	for word, want := range tests {
		if got := IsStopword(word); got != want {
			t.Errorf("IsStopword(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestTopNWords(t *testing.T) {
	a := &Analytics{}
	got := a.TopNWords("beta alpha beta gamma alpha beta", 2)
	want := []string{"beta", "alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopNWords() = %v, want %v", got, want)
	}
	if got := a.TopNWords("", 3); len(got) != 0 {
		t.Errorf("TopNWords(empty) = %v, want empty", got)
	}
}

func TestTopKeywords_TieBreak(t *testing.T) {
	got := TopKeywords(map[string]int{"zeta": 2, "alpha": 2, "mid": 5}, 3)
	want := []string{"mid:5", "alpha:2", "zeta:2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords() = %v, want %v", got, want)
	}
}
