package shell

import (
	"sort"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/render"
)

// 检查结果级别
const (
	SeverityError = "error"
	SeverityInfo  = "info"
)

// Finding 插槽检查结果
type Finding struct {
	Severity string
	Slot     string
	Count    int
	Message  string
}

// Lint 检查页面是否提供了所需插槽；重复容器合法，仅作提示
func Lint(doc *Document, pagePath string, withCart bool) (string, []Finding) {
	kind := render.DetectPage(pagePath, doc)
	required := append([]string(nil), RequiredSlots[kind]...)
	if withCart {
		required = append(required, CartSlots...)
	}
	findings := make([]Finding, 0, len(required))
	for _, slot := range required {
		count := len(doc.Slot(slot))
		switch {
		case count == 0:
			findings = append(findings, Finding{Severity: SeverityError, Slot: slot, Message: "slot container missing"})
		case count > 1:
			findings = append(findings, Finding{Severity: SeverityInfo, Slot: slot, Count: count, Message: "duplicate containers, last one is canonical"})
		}
	}
	if kind == constants.PageUnknown {
		findings = append(findings, Finding{Severity: SeverityInfo, Message: "page kind not recognised, nothing will be populated"})
	}
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity < findings[j].Severity
	})
	return kind, findings
}

// HasErrors 是否存在错误级别结果
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
