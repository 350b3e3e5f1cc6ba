package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	emailErr := fmt.Errorf("create user: %w", &pq.Error{Code: "23505", Constraint: emailConstraint})
	openErr := fmt.Errorf("create time entry: %w", &pq.Error{Code: "23505", Constraint: openEntryConstraint})

	if !isUniqueViolation(emailErr, emailConstraint) {
		t.Error("duplicate email violation not recognized")
	}
	if !isUniqueViolation(openErr, openEntryConstraint) {
		t.Error("open entry violation not recognized")
	}

	// The constraint name must match, not just the error class.
	if isUniqueViolation(emailErr, openEntryConstraint) {
		t.Error("email violation matched the open entry constraint")
	}

	// Other integrity violations pass through untouched.
	fkErr := &pq.Error{Code: "23503", Constraint: emailConstraint}
	if isUniqueViolation(fkErr, emailConstraint) {
		t.Error("foreign key violation treated as unique violation")
	}

	if isUniqueViolation(errors.New("connection refused"), emailConstraint) {
		t.Error("plain error treated as unique violation")
	}
}
