package hr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/workdesk/integration-assist/pkg/domain/errors"
)

// Statements containing any of these keywords are rejected before the
// database is contacted, even inside an otherwise valid SELECT.
var writeKeywords = []string{
	"insert", "update", "delete", "drop", "alter",
	"create", "truncate", "replace", "grant", "revoke",
}

var (
	identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	limitClause  = regexp.MustCompile(`(?i)\blimit\b`)
	wordSplit    = regexp.MustCompile(`[a-z_]+`)
)

// ValidateReadOnly rejects anything that is not a single plain SELECT
// statement. Keyword matching is on word boundaries so that column or table
// names merely containing a keyword ("created_at", "last_update") pass.
func ValidateReadOnly(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return errors.New(errors.CodeValidationFailed, "hr", "query must not be empty", nil)
	}

	lowered := strings.ToLower(trimmed)
	if !strings.HasPrefix(lowered, "select") {
		return errors.New(errors.CodeValidationFailed, "hr", "only SELECT queries are allowed", nil)
	}

	// No statement stacking. A single trailing semicolon is tolerated.
	if strings.Contains(strings.TrimSuffix(lowered, ";"), ";") {
		return errors.New(errors.CodeValidationFailed, "hr", "multiple statements are not allowed", nil)
	}

	for _, word := range wordSplit.FindAllString(lowered, -1) {
		for _, forbidden := range writeKeywords {
			if word == forbidden {
				return errors.New(errors.CodeValidationFailed, "hr",
					fmt.Sprintf("query contains forbidden keyword %q", forbidden), nil)
			}
		}
	}

	return nil
}

// ValidateTableName checks the allow-list pattern for identifiers used in
// schema statements, which cannot be parameterized.
func ValidateTableName(name string) error {
	if name == "" {
		return errors.New(errors.CodeMissingParameter, "hr", "table name is required", nil)
	}
	if !identPattern.MatchString(name) {
		return errors.New(errors.CodeInvalidParameter, "hr", fmt.Sprintf("invalid table name %q", name), nil)
	}
	return nil
}

// ensureLimit appends a LIMIT clause when the statement has none.
func ensureLimit(query string, limit int) string {
	if limitClause.MatchString(query) {
		return query
	}
	return fmt.Sprintf("%s LIMIT %d", strings.TrimSuffix(strings.TrimSpace(query), ";"), limit)
}
