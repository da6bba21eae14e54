package schema

import "log/slog"

// IntegrityReport lists the mismatches between a template's markers and its
// declared fields. Mismatches are authoring defects, not runtime errors:
// substitution proceeds fail-soft either way, and the report exists so
// catalogs can log feedback for template authors.
type IntegrityReport struct {
	// OrphanMarkers appear in the markup but have no matching field schema.
	// They render as literal text.
	OrphanMarkers []string

	// UnmatchedFields are declared but never referenced by a marker. Their
	// values are collected and scored but never shown in the preview.
	UnmatchedFields []string
}

// Clean reports whether every marker pairs with a field and vice versa.
func (r IntegrityReport) Clean() bool {
	return len(r.OrphanMarkers) == 0 && len(r.UnmatchedFields) == 0
}

// Log emits one warning per mismatch. Intended for catalog load time.
func (r IntegrityReport) Log(logger *slog.Logger, templateID string) {
	if logger == nil {
		return
	}
	for _, marker := range r.OrphanMarkers {
		logger.Warn("schema: marker without field",
			slog.String("template", templateID),
			slog.String("marker", marker))
	}
	for _, field := range r.UnmatchedFields {
		logger.Warn("schema: field without marker",
			slog.String("template", templateID),
			slog.String("field", field))
	}
}

// CheckIntegrity cross-references the descriptor's markup markers against its
// field schemas.
func CheckIntegrity(desc TemplateDescriptor) IntegrityReport {
	markers := Markers(desc.Markup)
	markerSet := make(map[string]struct{}, len(markers))
	for _, id := range markers {
		markerSet[id] = struct{}{}
	}

	fieldSet := make(map[string]struct{}, len(desc.Fields))
	var report IntegrityReport
	for _, field := range desc.Fields {
		fieldSet[field.ID] = struct{}{}
		if _, ok := markerSet[field.ID]; !ok {
			report.UnmatchedFields = append(report.UnmatchedFields, field.ID)
		}
	}
	for _, id := range markers {
		if _, ok := fieldSet[id]; !ok {
			report.OrphanMarkers = append(report.OrphanMarkers, id)
		}
	}
	return report
}
