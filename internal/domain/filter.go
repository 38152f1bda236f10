package domain

import "strings"

// JobFilter narrows a job listing. Empty strings and nil or zero salary bounds
// impose no constraint; every supplied field must match.
type JobFilter struct {
	Search    string
	Location  string
	Type      string
	Level     string
	Category  string
	SalaryMin *int
	SalaryMax *int
}

// MinSalary returns the requested salary floor, if any.
func (f JobFilter) MinSalary() (int, bool) {
	if f.SalaryMin == nil || *f.SalaryMin == 0 {
		return 0, false
	}
	return *f.SalaryMin, true
}

// MaxSalary returns the requested salary ceiling, if any.
func (f JobFilter) MaxSalary() (int, bool) {
	if f.SalaryMax == nil || *f.SalaryMax == 0 {
		return 0, false
	}
	return *f.SalaryMax, true
}

// Matches reports whether j passes every supplied predicate. Inactive jobs never match.
//
// A salary floor can only be confirmed against a declared maximum, and a ceiling only
// against a declared minimum: jobs missing the relevant bound are excluded.
func (f JobFilter) Matches(j Job) bool {
	if !j.IsActive {
		return false
	}
	if f.Search != "" && !matchesSearch(j, f.Search) {
		return false
	}
	if f.Location != "" && !ContainsFold(j.Location, f.Location) {
		return false
	}
	if f.Type != "" && j.Type != f.Type {
		return false
	}
	if f.Level != "" && j.Level != f.Level {
		return false
	}
	if f.Category != "" && j.Category != f.Category {
		return false
	}
	if floor, ok := f.MinSalary(); ok {
		if j.SalaryMax == nil || *j.SalaryMax < floor {
			return false
		}
	}
	if ceiling, ok := f.MaxSalary(); ok {
		if j.SalaryMin == nil || *j.SalaryMin > ceiling {
			return false
		}
	}
	return true
}

func matchesSearch(j Job, term string) bool {
	if ContainsFold(j.Title, term) || ContainsFold(j.Description, term) || ContainsFold(j.Company, term) {
		return true
	}
	for _, skill := range j.Skills {
		if ContainsFold(skill, term) {
			return true
		}
	}
	return false
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
