package tools

import (
	"context"
	"fmt"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
	"github.com/workdesk/integration-assist/pkg/hr"
)

func createQueryEmployeesHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		query, err := ExtractStringParam(args, "query")
		if err != nil {
			return nil, err
		}
		params, err := ExtractAnyArrayParam(args, "params")
		if err != nil {
			return nil, err
		}
		limit, err := ExtractOptionalIntParam(args, "limit", 0)
		if err != nil {
			return nil, err
		}

		result, err := deps.HR.Query(ctx, query, params, limit)
		if err != nil {
			return nil, err
		}

		return map[string]any{
			"columns":   result.Columns,
			"rows":      result.Rows,
			"row_count": result.RowCount,
			"truncated": result.Truncated,
		}, nil
	}
}

func createListTablesHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		tables, err := deps.HR.ListTables(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"tables": tables,
			"count":  len(tables),
		}, nil
	}
}

func createListDepartmentsHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		departments, err := deps.HR.Departments(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"departments": departments,
			"count":       len(departments),
		}, nil
	}
}

func createDescribeTableHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		name, err := ExtractStringParam(args, "table_name")
		if err != nil {
			return nil, err
		}

		columns, err := deps.HR.DescribeTable(ctx, name)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"table":   name,
			"columns": columns,
		}, nil
	}
}

func createGetEmployeeByIDHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		id, err := ExtractInt64Param(args, "employee_id")
		if err != nil {
			return nil, err
		}

		employee, err := deps.HR.EmployeeByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"employee": employee,
		}, nil
	}
}

func createGetEmployeesByDepartmentHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		department, err := ExtractStringParam(args, "department")
		if err != nil {
			return nil, err
		}

		employees, err := deps.HR.EmployeesByDepartment(ctx, department)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"department": department,
			"employees":  employees,
			"count":      len(employees),
		}, nil
	}
}

func createGetEmployeeCountHandler(deps ToolDependencies) ToolFunc {
	return func(ctx context.Context, args map[string]any) (map[string]any, error) {
		status := ExtractOptionalStringParam(args, "status", "")
		if status != "" && status != hr.StatusActive && status != hr.StatusInactive && status != hr.StatusTerminated {
			return nil, errors.New(errors.CodeInvalidParameter, "hr",
				fmt.Sprintf("unknown status %q", status), nil)
		}

		count, err := deps.HR.EmployeeCount(ctx, status)
		if err != nil {
			return nil, err
		}

		data := map[string]any{"count": count}
		if status != "" {
			data["status"] = status
		}
		return data, nil
	}
}
