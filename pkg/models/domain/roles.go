package domain

// ColumnRole is a semantic label assigned to a physical spreadsheet column
// whose literal header text drifts across source files.
type ColumnRole string

const (
	RoleEquipmentID ColumnRole = "equipment_id"
	RoleJobNumber   ColumnRole = "job_number"
	RoleCostCode    ColumnRole = "cost_code"
	RoleUnits       ColumnRole = "units"
	RoleRate        ColumnRole = "rate"
	RoleAmount      ColumnRole = "amount"
	RoleDate        ColumnRole = "date"
	RoleKey         ColumnRole = "key_column"
)

// RoleMap maps each resolved role to the column name that plays it.
// Unresolved roles are simply absent; callers check required roles
// before extracting rows.
type RoleMap map[ColumnRole]string

func (m RoleMap) Column(role ColumnRole) (string, bool) {
	col, ok := m[role]
	return col, ok
}

// MissingRequired returns the required roles this map failed to resolve.
// A sheet is usable only with an equipment ID, a job number, and at
// least one of units/amount.
func (m RoleMap) MissingRequired() []ColumnRole {
	var missing []ColumnRole
	if _, ok := m[RoleEquipmentID]; !ok {
		missing = append(missing, RoleEquipmentID)
	}
	if _, ok := m[RoleJobNumber]; !ok {
		missing = append(missing, RoleJobNumber)
	}
	_, hasUnits := m[RoleUnits]
	_, hasAmount := m[RoleAmount]
	if !hasUnits && !hasAmount {
		missing = append(missing, RoleUnits)
	}
	return missing
}

func (m RoleMap) Usable() bool {
	return len(m.MissingRequired()) == 0
}
