// Package hr provides read-only query access to an external HR database.
// The database owns all state; nothing here creates, mutates, or deletes rows.
package hr

import "time"

// EmployeeStatus values stored in the employees.status column.
const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

// Employee mirrors a row of the employees table.
type Employee struct {
	ID             int64      `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	HireDate       *time.Time `json:"hire_date,omitempty"`
	JobTitle       string     `json:"job_title"`
	DepartmentID   *int64     `json:"department_id,omitempty"`
	Salary         float64    `json:"salary"`
	ManagerID      *int64     `json:"manager_id,omitempty"`
	Status         string     `json:"status"`
	DepartmentName string     `json:"department_name,omitempty"`
}

// Department is a row of the departments table joined with its headcount.
type Department struct {
	ID            int64  `json:"id"`
	Name          string `json:"department_name"`
	EmployeeCount int64  `json:"employee_count"`
}

// ColumnInfo is one row of a DESCRIBE result.
type ColumnInfo struct {
	Field   string  `json:"field"`
	Type    string  `json:"type"`
	Null    string  `json:"null"`
	Key     string  `json:"key"`
	Default *string `json:"default"`
	Extra   string  `json:"extra"`
}

// QueryResult carries the rows of an ad-hoc SELECT. Truncated is set when the
// row limit cut the result short, so callers never mistake a partial result
// for a complete one.
type QueryResult struct {
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	RowCount  int              `json:"row_count"`
	Truncated bool             `json:"truncated"`
}
