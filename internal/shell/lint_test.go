package shell

import (
	"testing"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/render"
)

func TestLintProductShell(t *testing.T) {
	doc := loadProductShell(t, nil)
	kind, findings := Lint(doc, "/detail_product.html", true)
	if kind != constants.PageProduct {
		t.Fatalf("expected product page, got %s", kind)
	}
	if HasErrors(findings) {
		t.Fatalf("complete shell should not report errors: %+v", findings)
	}
	var duplicate bool
	for _, f := range findings {
		if f.Slot == render.SlotGallery && f.Severity == SeverityInfo && f.Count == 2 {
			duplicate = true
		}
	}
	if !duplicate {
		t.Fatalf("duplicate gallery containers should be reported: %+v", findings)
	}
}

func TestLintReportsMissingSlots(t *testing.T) {
	doc, err := ParseString(`<html><body><div class="hero-heading-2">Hi</div></body></html>`, nil)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	kind, findings := Lint(doc, "/index.html", false)
	if kind != constants.PageHome {
		t.Fatalf("expected home page, got %s", kind)
	}
	if !HasErrors(findings) || findings[0].Slot != render.SlotHomeSlider {
		t.Fatalf("missing home slider should be an error: %+v", findings)
	}

	_, findings = Lint(doc, "/impressum.html", false)
	if HasErrors(findings) || len(findings) != 1 {
		t.Fatalf("unknown page should only carry an info finding: %+v", findings)
	}
}
