package wizard

import (
	"fmt"

	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/pattern"
)

// Result is the outcome of validating one step. Errors block forward
// navigation; warnings do not.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate decides whether the given step is complete enough to proceed.
// It is pure over the state: no network, no caches, same input same output.
func Validate(step Step, s State) Result {
	switch step {
	case StepDataSource:
		return validateDataSource(s)
	case StepCampaign:
		return validateCampaign(s)
	case StepHierarchy:
		return validateHierarchy(s)
	case StepPlatform:
		return validatePlatform(s)
	default:
		// rules and review are optional steps, always passable
		return Result{Valid: true}
	}
}

func validateDataSource(s State) Result {
	if s.DataSourceID == "" {
		return invalid("Select a data source to continue")
	}
	return Result{Valid: true}
}

func validateCampaign(s State) Result {
	var r Result
	if s.Campaign.NamePattern == "" {
		return invalid("Campaign name pattern is required")
	}
	r.Errors = append(r.Errors, unresolvableTokens("Campaign name", s.Campaign.NamePattern, s.Columns)...)
	r.Valid = len(r.Errors) == 0
	return r
}

func validateHierarchy(s State) Result {
	var r Result
	for gi, g := range s.Hierarchy.AdGroups {
		label := fmt.Sprintf("Ad group %d", gi+1)
		if g.NamePattern == "" {
			r.Errors = append(r.Errors, label+": name pattern is required")
		} else {
			r.Errors = append(r.Errors, unresolvableTokens(label+" name", g.NamePattern, s.Columns)...)
		}
		for ai, ad := range g.Ads {
			adLabel := fmt.Sprintf("%s, ad %d", label, ai+1)
			if ad.Headline == "" {
				r.Errors = append(r.Errors, adLabel+": headline is required")
			} else {
				r.Errors = append(r.Errors, unresolvableTokens(adLabel+" headline", ad.Headline, s.Columns)...)
			}
			if ad.Description == "" {
				r.Errors = append(r.Errors, adLabel+": description is required")
			} else {
				r.Errors = append(r.Errors, unresolvableTokens(adLabel+" description", ad.Description, s.Columns)...)
			}
			// URL fields are optional; when present they must resolve, and
			// referencing a column that is not string-typed gets a warning
			// rather than an error.
			for _, url := range []struct{ field, p string }{
				{"display URL", ad.DisplayURL},
				{"final URL", ad.FinalURL},
			} {
				if url.p == "" {
					continue
				}
				r.Errors = append(r.Errors, unresolvableTokens(adLabel+" "+url.field, url.p, s.Columns)...)
				r.Warnings = append(r.Warnings, atypicalTypeWarnings(adLabel+" "+url.field, url.p, s.Columns)...)
			}
		}
	}
	r.Valid = len(r.Errors) == 0
	return r
}

func validatePlatform(s State) Result {
	if len(s.Platforms) == 0 {
		return invalid("Select at least one platform")
	}
	return Result{Valid: true}
}

// unresolvableTokens returns one error per token whose identifier does not
// name an available column.
func unresolvableTokens(field, p string, cols []models.Column) []string {
	var errs []string
	for _, name := range pattern.Names(p) {
		if models.FindColumn(cols, name) == nil {
			errs = append(errs, fmt.Sprintf("%s: variable {%s} not found in data source columns", field, name))
		}
	}
	return errs
}

func atypicalTypeWarnings(field, p string, cols []models.Column) []string {
	var warns []string
	for _, name := range pattern.Names(p) {
		col := models.FindColumn(cols, name)
		if col == nil {
			continue
		}
		if col.Type != models.ColumnTypeString && col.Type != models.ColumnTypeUnknown {
			warns = append(warns, fmt.Sprintf("%s: column %q is %s-typed, which is unusual in a URL", field, name, col.Type))
		}
	}
	return warns
}

func invalid(msg string) Result {
	return Result{Valid: false, Errors: []string{msg}}
}
