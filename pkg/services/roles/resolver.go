package roles

import (
	"strings"

	"github.com/traxovo/fleet-ledger/pkg/models/domain"
)

// Pattern declares the candidate header substrings for one role.
// Patterns are evaluated in declaration order and columns are claimed
// first-match-wins, so earlier roles take precedence when a header
// could satisfy more than one role.
type Pattern struct {
	Role     domain.ColumnRole
	Contains []string
}

// DefaultPatterns is the built-in rule table, matched against
// uppercased header text. Overridable through configuration.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Role: domain.RoleEquipmentID, Contains: []string{"EQUIP", "EQ #", "ASSET", "UNIT #"}},
		{Role: domain.RoleJobNumber, Contains: []string{"JOB", "PROJECT"}},
		{Role: domain.RoleCostCode, Contains: []string{"COST CODE", "COSTCODE", "PHASE"}},
		{Role: domain.RoleAmount, Contains: []string{"AMOUNT", "TOTAL", "EXT"}},
		{Role: domain.RoleRate, Contains: []string{"RATE", "PRICE"}},
		{Role: domain.RoleUnits, Contains: []string{"UNITS", "QTY", "HOURS", "ALLOCATION", "REVISION"}},
		{Role: domain.RoleDate, Contains: []string{"DATE"}},
	}
}

// Resolve maps roles to physical columns by scanning headers in their
// original order. Unmatched roles are left out of the map; no error is
// raised for absence.
func Resolve(headers []string, patterns []Pattern) domain.RoleMap {
	claimed := make(map[string]bool, len(headers))
	m := make(domain.RoleMap, len(patterns))

	for _, p := range patterns {
		for _, header := range headers {
			if claimed[header] {
				continue
			}
			if headerMatches(header, p.Contains) {
				m[p.Role] = header
				claimed[header] = true
				break
			}
		}
	}

	refineUnits(headers, m)
	return m
}

// refineUnits prefers a revision/allocation unit column over a generic
// one when both exist; source workbooks often carry multiple unit
// columns of differing specificity.
func refineUnits(headers []string, m domain.RoleMap) {
	for _, header := range headers {
		upper := strings.ToUpper(header)
		specific := strings.Contains(upper, "REVISION") || strings.Contains(upper, "ALLOCAT")
		if specific && strings.Contains(upper, "UNIT") {
			m[domain.RoleUnits] = header
			return
		}
	}
}

func headerMatches(header string, candidates []string) bool {
	upper := strings.ToUpper(header)
	for _, c := range candidates {
		if strings.Contains(upper, c) {
			return true
		}
	}
	return false
}
