package validator

import (
	"invonest/internal/domain"
)

// FieldStatus represents the computed validation state for a single field path.
type FieldStatus struct {
	Status   domain.FieldValidationStatus `json:"status"`
	Messages []string                     `json:"messages"`
}

// ComputeFieldStatuses derives per-field statuses from rule results. A field
// is invalid if any error-severity rule failed on it, unsure if only
// warnings failed, and valid otherwise.
func ComputeFieldStatuses(results []ValidationResultItem) map[string]*FieldStatus {
	statuses := make(map[string]*FieldStatus)
	for idx := range results {
		r := &results[idx]
		if r.FieldPath == "" {
			continue
		}
		fs, ok := statuses[r.FieldPath]
		if !ok {
			fs = &FieldStatus{Status: domain.FieldStatusValid, Messages: []string{}}
			statuses[r.FieldPath] = fs
		}
		if r.Passed {
			continue
		}
		if r.Severity == string(domain.ValidationSeverityError) {
			fs.Status = domain.FieldStatusInvalid
		} else if fs.Status != domain.FieldStatusInvalid {
			fs.Status = domain.FieldStatusUnsure
		}
		fs.Messages = append(fs.Messages, r.Message)
	}
	return statuses
}
