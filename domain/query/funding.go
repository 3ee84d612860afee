// Package query filters and aggregates parsed sheet records. Every function
// is pure and only reads its input, so a record slice can be shared by
// concurrent requests.
package query

import (
	"fmt"
	"sort"

	"smartsheetsvc/domain/records"
)

// FilterFunding keeps records whose project name equals projectName and,
// when subproject is given, whose subproject equals it. With both filters
// absent every record is kept; a subproject without a project name matches
// nothing.
func FilterFunding(recs []records.FundingModel, projectName, subproject *string) []records.FundingModel {
	out := make([]records.FundingModel, 0, len(recs))
	for _, r := range recs {
		nameMatches := projectName != nil && equals(r.ProjectName, *projectName)
		subprojectOK := subproject == nil || equals(r.Subproject, *subproject)
		if (nameMatches && subprojectOK) || (projectName == nil && subproject == nil) {
			out = append(out, r)
		}
	}
	return out
}

// AggregateProjectNames returns the distinct project names in ascending
// order. A record with a subproject contributes "<project> - <subproject>".
func AggregateProjectNames(recs []records.FundingModel) []string {
	seen := make(map[string]struct{})
	for _, r := range recs {
		if r.ProjectName.IsNull() {
			continue
		}
		name := display(r.ProjectName)
		if !r.Subproject.IsNull() {
			name = fmt.Sprintf("%s - %s", name, display(r.Subproject))
		}
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// equals compares a string field exactly. Null fields and raw non-string
// values never match.
func equals(f records.Field[string], want string) bool {
	v, ok := f.Get()
	return ok && v == want
}

func display(f records.Field[string]) string {
	if v, ok := f.Get(); ok {
		return v
	}
	return fmt.Sprint(f.Interface())
}
