package checklist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
)

func TestCreateDefault_AllPending(t *testing.T) {
	cats := CreateDefault()
	if len(cats) == 0 {
		t.Fatal("CreateDefault() returned no categories")
	}
	for _, c := range cats {
		if c.Score != 0 {
			t.Errorf("category %s score = %v, want 0", c.ID, c.Score)
		}
		for _, it := range c.Items {
			if it.Status != models.StatusPending {
				t.Errorf("item %s status = %q, want pending", it.ID, it.Status)
			}
			if it.Note != "" {
				t.Errorf("item %s note = %q, want empty", it.ID, it.Note)
			}
		}
	}
}

func TestCreateDefault_WeightsSumTo100(t *testing.T) {
	var total float64
	for _, c := range CreateDefault() {
		total += c.Weight
	}
	if total != 100 {
		t.Errorf("category weights sum = %v, want 100", total)
	}
}

func TestCreateDefault_IsValid(t *testing.T) {
	if err := Validate(CreateDefault()); err != nil {
		t.Fatalf("Validate(CreateDefault()) error = %v", err)
	}
}

func TestCreateDefault_IndependentCopies(t *testing.T) {
	a := CreateDefault()
	b := CreateDefault()

	a[0].Items[0].Status = models.StatusCorrect
	a[0].Items[0].Note = "checked by hand"
	a[0].Score = 99

	if b[0].Items[0].Status != models.StatusPending {
		t.Error("mutating one checklist leaked into another")
	}
	if defaultTemplate[0].Items[0].Status != models.StatusPending || defaultTemplate[0].Score != 0 {
		t.Error("mutating a checklist leaked into the template")
	}
}

func TestClone_DeepCopy(t *testing.T) {
	orig := CreateDefault()
	cp := Clone(orig)
	if !reflect.DeepEqual(orig, cp) {
		t.Fatal("Clone() result differs from input")
	}
	cp[1].Items[0].Status = models.StatusMissing
	if orig[1].Items[0].Status != models.StatusPending {
		t.Error("Clone() shares item slices with input")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestValidate(t *testing.T) {
	valid := func() []models.AuditCategory {
		return []models.AuditCategory{{
			ID: "c", Name: "C", Weight: 1,
			Items: []models.ChecklistItem{{ID: "a", Status: models.StatusPending, Weight: 1, Impact: 5, Effort: models.EffortLow}},
		}}
	}

	tests := []struct {
		name   string
		mutate func([]models.AuditCategory) []models.AuditCategory
	}{
		{"empty catalog", func([]models.AuditCategory) []models.AuditCategory { return nil }},
		{"empty category id", func(c []models.AuditCategory) []models.AuditCategory { c[0].ID = ""; return c }},
		{"zero category weight", func(c []models.AuditCategory) []models.AuditCategory { c[0].Weight = 0; return c }},
		{"duplicate category", func(c []models.AuditCategory) []models.AuditCategory {
			d := c[0]
			d.Items = nil
			return append(c, d)
		}},
		{"duplicate item across categories", func(c []models.AuditCategory) []models.AuditCategory {
			return append(c, models.AuditCategory{ID: "d", Weight: 1, Items: c[0].Items})
		}},
		{"negative item weight", func(c []models.AuditCategory) []models.AuditCategory { c[0].Items[0].Weight = -1; return c }},
		{"bad status", func(c []models.AuditCategory) []models.AuditCategory { c[0].Items[0].Status = "done"; return c }},
		{"bad effort", func(c []models.AuditCategory) []models.AuditCategory { c[0].Items[0].Effort = "tiny"; return c }},
		{"impact too high", func(c []models.AuditCategory) []models.AuditCategory { c[0].Items[0].Impact = 11; return c }},
		{"impact zero", func(c []models.AuditCategory) []models.AuditCategory { c[0].Items[0].Impact = 0; return c }},
	}

	if err := Validate(valid()); err != nil {
		t.Fatalf("Validate(valid) error = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.mutate(valid()))
			if !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("Validate() error = %v, want ErrInvalidTemplate", err)
			}
		})
	}
}

func TestLoad_RoundTripsDefault(t *testing.T) {
	raw, err := Marshal(CreateDefault())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "checklist.yaml")
	if err := os.WriteFile(path, raw, 0600); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded, CreateDefault()) {
		t.Error("Load(Marshal(CreateDefault())) differs from CreateDefault()")
	}
}

func TestParse_ResetsStatusAndRejectsInvalid(t *testing.T) {
	doc := `
categories:
  - id: seo
    name: SEO
    weight: 60
    items:
      - id: title
        label: Title
        weight: 1
        impact: 7
        effort: low
        status: correct
        note: stale
`
	cats, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	it := cats[0].Items[0]
	if it.Status != models.StatusPending || it.Note != "" {
		t.Errorf("loaded item = %+v, want pending with no note", it)
	}

	bad := `
categories:
  - id: seo
    weight: 1
    items:
      - id: title
        weight: 1
        impact: 7
        effort: someday
`
	if _, err := Parse([]byte(bad)); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("Parse(bad effort) error = %v, want ErrInvalidTemplate", err)
	}
}

func TestLookup(t *testing.T) {
	if got := Lookup(CategoryTechnicalSEO); got.Icon != "settings" {
		t.Errorf("Lookup(technical_seo).Icon = %q, want settings", got.Icon)
	}
	for _, c := range CreateDefault() {
		if Lookup(c.ID) == FallbackMeta {
			t.Errorf("built-in category %s has no lookup entry", c.ID)
		}
	}
	if got := Lookup("does-not-exist"); got != FallbackMeta {
		t.Errorf("Lookup(unknown) = %+v, want fallback", got)
	}
}
