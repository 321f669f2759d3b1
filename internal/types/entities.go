// Package types provides type definitions for structured data used throughout the ats-scorer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExtractedEntities holds entity mentions in discovery order. Any list may be empty.
type ExtractedEntities struct {
	Names         []string `json:"names"`
	Organizations []string `json:"organizations"`
	Dates         []string `json:"dates"`
	Locations     []string `json:"locations"`
	Emails        []string `json:"emails"`
	Phones        []string `json:"phones"`
	URLs          []string `json:"urls"`
}

// EmptyEntities returns an ExtractedEntities whose lists are non-nil and empty.
func EmptyEntities() ExtractedEntities {
	return ExtractedEntities{
		Names:         []string{},
		Organizations: []string{},
		Dates:         []string{},
		Locations:     []string{},
		Emails:        []string{},
		Phones:        []string{},
		URLs:          []string{},
	}
}

// Normalized replaces nil lists with empty ones so reports always render arrays.
func (e ExtractedEntities) Normalized() ExtractedEntities {
	return ExtractedEntities{
		Names:         orEmpty(e.Names),
		Organizations: orEmpty(e.Organizations),
		Dates:         orEmpty(e.Dates),
		Locations:     orEmpty(e.Locations),
		Emails:        orEmpty(e.Emails),
		Phones:        orEmpty(e.Phones),
		URLs:          orEmpty(e.URLs),
	}
}

// PrimaryName returns the first name mention, or "".
func (e ExtractedEntities) PrimaryName() string {
	if len(e.Names) == 0 {
		return ""
	}
	return e.Names[0]
}

// DistinctOrganizations counts organizations case-insensitively.
func (e ExtractedEntities) DistinctOrganizations() int {
	return countDistinctFold(e.Organizations)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
