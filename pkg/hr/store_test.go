package hr

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := DefaultConfig()
	cfg.MaxRows = 3
	cfg.QueryTimeout = 5 * time.Second
	return NewStore(db, cfg, zerolog.Nop()), mock
}

func employeeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "employee_id", "first_name", "last_name", "email", "hire_date",
		"job_title", "department_id", "salary", "manager_id", "status",
	})
}

func TestQueryRejectsWritesBeforeDispatch(t *testing.T) {
	store, mock := newTestStore(t)

	_, err := store.Query(context.Background(), "DELETE FROM employees", nil, 10)
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationFailed, errors.CodeOf(err))

	// the guard fires before any database traffic
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryAppendsLimit(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM employees LIMIT 3")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))

	result, err := store.Query(context.Background(), "SELECT id FROM employees", nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowCount)
	assert.False(t, result.Truncated)
	assert.Equal(t, []string{"id"}, result.Columns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryFlagsTruncation(t *testing.T) {
	store, mock := newTestStore(t)

	rows := sqlmock.NewRows([]string{"id"})
	for i := 1; i <= 3; i++ {
		rows.AddRow(int64(i))
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM employees LIMIT 3")).WillReturnRows(rows)

	result, err := store.Query(context.Background(), "SELECT id FROM employees", nil, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowCount)
	assert.True(t, result.Truncated)
}

func TestQueryConvertsBytesToStrings(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT email FROM employees LIMIT 4")).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow([]byte("ann@corp.example")))

	result, err := store.Query(context.Background(), "SELECT email FROM employees", nil, 3)
	require.NoError(t, err)
	assert.Equal(t, "ann@corp.example", result.Rows[0]["email"])
}

func TestQueryBindsParameters(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM employees WHERE status = ? LIMIT 4")).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	result, err := store.Query(context.Background(), "SELECT id FROM employees WHERE status = ?", []any{"active"}, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTables(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SHOW TABLES").WillReturnRows(
		sqlmock.NewRows([]string{"Tables_in_hr_management"}).
			AddRow("departments").AddRow("employees"))

	tables, err := store.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"departments", "employees"}, tables)
}

func TestDepartments(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT d\\.id, d\\.department_name, COUNT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "department_name", "count"}).
			AddRow(1, "Engineering", 12).
			AddRow(2, "Sales", 0))

	departments, err := store.Departments(context.Background())
	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.Equal(t, Department{ID: 1, Name: "Engineering", EmployeeCount: 12}, departments[0])
	assert.Equal(t, Department{ID: 2, Name: "Sales", EmployeeCount: 0}, departments[1])
}

func TestDescribeTableRejectsBadNameWithoutQuerying(t *testing.T) {
	store, mock := newTestStore(t)

	_, err := store.DescribeTable(context.Background(), "employees; DROP TABLE x")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidParameter, errors.CodeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDescribeTableUnknownTable(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SHOW TABLES").WillReturnRows(
		sqlmock.NewRows([]string{"Tables_in_hr_management"}).AddRow("employees"))

	_, err := store.DescribeTable(context.Background(), "salaries")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.CodeOf(err))

	// no DESCRIBE was issued for the unknown table
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDescribeTable(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SHOW TABLES").WillReturnRows(
		sqlmock.NewRows([]string{"Tables_in_hr_management"}).AddRow("employees"))
	mock.ExpectQuery(regexp.QuoteMeta("DESCRIBE `employees`")).WillReturnRows(
		sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "bigint", "NO", "PRI", nil, "auto_increment").
			AddRow("status", "enum('active','inactive','terminated')", "NO", "", "active", ""))

	columns, err := store.DescribeTable(context.Background(), "employees")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "id", columns[0].Field)
	assert.Nil(t, columns[0].Default)
	require.NotNil(t, columns[1].Default)
	assert.Equal(t, "active", *columns[1].Default)
}

func TestEmployeeByID(t *testing.T) {
	store, mock := newTestStore(t)

	hired := time.Date(2021, 4, 12, 0, 0, 0, 0, time.UTC)
	dept := int64(3)
	mock.ExpectQuery("SELECT .+ FROM employees WHERE id = \\? LIMIT 1").
		WithArgs(int64(42)).
		WillReturnRows(employeeRows().AddRow(
			int64(42), "EMP042", "Ann", "Odom", "ann@corp.example", hired,
			"Engineer", dept, 98000.0, nil, "active"))

	employee, err := store.EmployeeByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "EMP042", employee.EmployeeID)
	assert.Equal(t, "active", employee.Status)
	require.NotNil(t, employee.DepartmentID)
	assert.Equal(t, int64(3), *employee.DepartmentID)
	assert.Nil(t, employee.ManagerID)
	require.NotNil(t, employee.HireDate)
	assert.True(t, employee.HireDate.Equal(hired))
}

func TestEmployeeByIDNotFound(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT .+ FROM employees WHERE id = \\? LIMIT 1").
		WithArgs(int64(999)).
		WillReturnRows(employeeRows())

	employee, err := store.EmployeeByID(context.Background(), 999)
	require.Error(t, err)
	assert.Nil(t, employee)
	assert.Equal(t, errors.CodeNotFound, errors.CodeOf(err))
}

func TestEmployeesByDepartmentByName(t *testing.T) {
	store, mock := newTestStore(t)

	dept := int64(2)
	mock.ExpectQuery("SELECT .+ FROM employees e JOIN departments d .+ WHERE d.department_name = \\? ORDER BY e.id").
		WithArgs("Engineering").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "employee_id", "first_name", "last_name", "email", "hire_date",
			"job_title", "department_id", "salary", "manager_id", "status", "department_name",
		}).AddRow(int64(1), "EMP001", "Bo", "Lin", "bo@corp.example", nil,
			"Engineer", dept, 91000.0, nil, "active", "Engineering"))

	employees, err := store.EmployeesByDepartment(context.Background(), "Engineering")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "Engineering", employees[0].DepartmentName)
}

func TestEmployeesByDepartmentByID(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery("SELECT .+ FROM employees e JOIN departments d .+ WHERE d.id = \\? ORDER BY e.id").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "employee_id", "first_name", "last_name", "email", "hire_date",
			"job_title", "department_id", "salary", "manager_id", "status", "department_name",
		}))

	employees, err := store.EmployeesByDepartment(context.Background(), "2")
	require.NoError(t, err)
	assert.Empty(t, employees)
}

func TestEmployeeCount(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM employees WHERE status = ?")).
		WithArgs("active").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(12)))

	count, err := store.EmployeeCount(context.Background(), "active")
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}

func TestEmployeeCountUnfiltered(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM employees")).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(15)))

	count, err := store.EmployeeCount(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(15), count)
}

func TestQueryClassifiesDriverFailure(t *testing.T) {
	store, mock := newTestStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM employees LIMIT 4")).
		WillReturnError(assert.AnError)

	_, err := store.Query(context.Background(), "SELECT id FROM employees", nil, 3)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConnectivityError, errors.CodeOf(err))
}
