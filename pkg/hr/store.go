package hr

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

// Store wraps the long-lived database handle. All operations are read-only
// SELECT/SHOW/DESCRIBE statements; connection pooling is left to database/sql.
type Store struct {
	db  *sql.DB
	cfg Config
	log zerolog.Logger
}

// NewStore wraps an existing handle. Used directly by tests.
func NewStore(db *sql.DB, cfg Config, log zerolog.Logger) *Store {
	return &Store{db: db, cfg: cfg, log: log}
}

// Open connects to the configured MySQL database and verifies reachability.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, errors.New(errors.CodeConfigurationInvalid, "hr", "invalid database configuration", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.New(errors.CodeConnectivityError, "hr", "database connection failed", err)
	}
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Str("database", cfg.Database).
		Msg("Connected to HR database")
	return NewStore(db, cfg, log), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// MaxRows returns the configured row cap for ad-hoc queries.
func (s *Store) MaxRows() int {
	return s.cfg.MaxRows
}

// Query executes an ad-hoc read-only statement. The statement is validated
// before the database is contacted, a LIMIT is appended when absent, and one
// row past the limit is fetched so truncation can be flagged.
func (s *Store) Query(ctx context.Context, query string, args []any, limit int) (*QueryResult, error) {
	if err := ValidateReadOnly(query); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.cfg.MaxRows {
		limit = s.cfg.MaxRows
	}

	probe := limit + 1
	stmt := ensureLimit(query, probe)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, s.classify("query failed", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, s.classify("reading result columns failed", err)
	}

	result := &QueryResult{Columns: columns, Rows: []map[string]any{}}
	for rows.Next() {
		if len(result.Rows) == limit {
			result.Truncated = true
			break
		}
		row, err := scanRow(rows, columns)
		if err != nil {
			return nil, s.classify("scanning row failed", err)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify("reading rows failed", err)
	}
	result.RowCount = len(result.Rows)

	s.log.Debug().Int("rows", result.RowCount).Bool("truncated", result.Truncated).Msg("Query executed")
	return result, nil
}

// ListTables returns the table names of the configured database.
func (s *Store) ListTables(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SHOW TABLES")
	if err != nil {
		return nil, s.classify("listing tables failed", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, s.classify("scanning table name failed", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify("listing tables failed", err)
	}
	return tables, nil
}

// DescribeTable returns column metadata for a table. The name must pass the
// identifier pattern and exist in the live table set before any schema
// statement runs, since identifiers cannot be bound as parameters.
func (s *Store) DescribeTable(ctx context.Context, name string) ([]ColumnInfo, error) {
	if err := ValidateTableName(name); err != nil {
		return nil, err
	}

	tables, err := s.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, table := range tables {
		if table == name {
			known = true
			break
		}
	}
	if !known {
		return nil, errors.New(errors.CodeNotFound, "hr", fmt.Sprintf("table %q does not exist", name), nil)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("DESCRIBE `%s`", name))
	if err != nil {
		return nil, s.classify("describing table failed", err)
	}
	defer rows.Close()

	var columns []ColumnInfo
	for rows.Next() {
		var col ColumnInfo
		var def sql.NullString
		if err := rows.Scan(&col.Field, &col.Type, &col.Null, &col.Key, &def, &col.Extra); err != nil {
			return nil, s.classify("scanning column metadata failed", err)
		}
		if def.Valid {
			col.Default = &def.String
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify("describing table failed", err)
	}
	return columns, nil
}

const employeeColumns = `id, employee_id, first_name, last_name, email, hire_date,
	job_title, department_id, salary, manager_id, status`

// EmployeeByID looks up a single employee by primary key.
func (s *Store) EmployeeByID(ctx context.Context, id int64) (*Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ? LIMIT 1", id)

	var e Employee
	err := row.Scan(&e.ID, &e.EmployeeID, &e.FirstName, &e.LastName, &e.Email,
		&e.HireDate, &e.JobTitle, &e.DepartmentID, &e.Salary, &e.ManagerID, &e.Status)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.New(errors.CodeNotFound, "hr", fmt.Sprintf("no employee with id %d", id), nil)
	}
	if err != nil {
		return nil, s.classify("employee lookup failed", err)
	}
	return &e, nil
}

// EmployeesByDepartment returns the employees of a department, matched by
// department name or, when the argument is numeric, by department id.
// Results are ordered by employee id.
func (s *Store) EmployeesByDepartment(ctx context.Context, department string) ([]Employee, error) {
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, errors.New(errors.CodeMissingParameter, "hr", "department is required", nil)
	}

	where := "d.department_name = ?"
	var arg any = department
	if id, err := strconv.ParseInt(department, 10, 64); err == nil {
		where = "d.id = ?"
		arg = id
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	query := `SELECT e.id, e.employee_id, e.first_name, e.last_name, e.email, e.hire_date,
	e.job_title, e.department_id, e.salary, e.manager_id, e.status, d.department_name
	FROM employees e JOIN departments d ON e.department_id = d.id
	WHERE ` + where + ` ORDER BY e.id`

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, s.classify("department lookup failed", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.FirstName, &e.LastName, &e.Email,
			&e.HireDate, &e.JobTitle, &e.DepartmentID, &e.Salary, &e.ManagerID,
			&e.Status, &e.DepartmentName); err != nil {
			return nil, s.classify("scanning employee failed", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify("department lookup failed", err)
	}
	return employees, nil
}

// Departments lists every department with its headcount, ordered by id.
// Departments with no employees are included with a zero count.
func (s *Store) Departments(ctx context.Context) ([]Department, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	query := `SELECT d.id, d.department_name, COUNT(e.id)
	FROM departments d LEFT JOIN employees e ON e.department_id = d.id
	GROUP BY d.id, d.department_name ORDER BY d.id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.classify("listing departments failed", err)
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.EmployeeCount); err != nil {
			return nil, s.classify("scanning department failed", err)
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify("listing departments failed", err)
	}
	return departments, nil
}

// EmployeeCount returns the number of employees, optionally filtered by
// status. With an empty status every row is counted, so the unfiltered count
// equals the sum of the per-status counts.
func (s *Store) EmployeeCount(ctx context.Context, status string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout)
	defer cancel()

	var (
		count int64
		err   error
	)
	if status == "" {
		err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees").Scan(&count)
	} else {
		err = s.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM employees WHERE status = ?", status).Scan(&count)
	}
	if err != nil {
		return 0, s.classify("employee count failed", err)
	}
	return count, nil
}

// classify maps driver failures onto the structured error kinds: server-side
// statement errors are upstream failures, deadline hits are timeouts, and
// anything else (dial errors, dropped connections) is a connectivity problem.
func (s *Store) classify(message string, err error) error {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.New(errors.CodeTimeoutError, "hr", message, err)
	case isMySQLError(err):
		return errors.New(errors.CodeUpstreamError, "hr", message, err)
	default:
		return errors.New(errors.CodeConnectivityError, "hr", message, err)
	}
}

func isMySQLError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return stderrors.As(err, &mysqlErr)
}

// scanRow reads the current row into a column-keyed map, converting []byte
// values to strings so they serialize as text rather than base64.
func scanRow(rows *sql.Rows, columns []string) (map[string]any, error) {
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}
	if err := rows.Scan(pointers...); err != nil {
		return nil, err
	}

	row := make(map[string]any, len(columns))
	for i, column := range columns {
		switch v := values[i].(type) {
		case []byte:
			row[column] = string(v)
		default:
			row[column] = v
		}
	}
	return row, nil
}
