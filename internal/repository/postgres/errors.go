package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
)

// activeStatuses is the SQL list of statuses that still hold a slot.
const activeStatuses = `('accepted', 'pending')`

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pqCode(err) == codeForeignKeyViolation
}

// isInvalidID reports a malformed UUID parameter, which can never match a row.
func isInvalidID(err error) bool {
	return pqCode(err) == codeInvalidText
}

type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
