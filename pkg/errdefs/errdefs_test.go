package errdefs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestViolationsAggregate(t *testing.T) {
	var vs Violations
	vs.Add("mode", "exactly one variant must be set")
	vs.Addf("env[1]", "%q must be of the form KEY=VALUE", "FOO")

	err := vs.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsInvalidSpec(err) {
		t.Error("aggregated error should unwrap to ErrInvalidSpec")
	}

	msg := err.Error()
	if !strings.Contains(msg, "mode") || !strings.Contains(msg, "env[1]") {
		t.Errorf("error should list every violated field, got %q", msg)
	}
}

func TestViolationsEmpty(t *testing.T) {
	var vs Violations
	if err := vs.Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestMergePrefixesFieldPaths(t *testing.T) {
	var inner Violations
	inner.Add("image", "image reference is required")

	var outer Violations
	outer.Merge("task.runtime.container", inner.Err())

	err := outer.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "task.runtime.container.image") {
		t.Errorf("expected prefixed field path, got %q", err.Error())
	}
}

func TestMergeNilIsNoOp(t *testing.T) {
	var vs Violations
	vs.Merge("task", nil)
	if err := vs.Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestSentinelPredicates(t *testing.T) {
	if !IsConflict(Conflict("service", "svc-1", 2, 3)) {
		t.Error("Conflict should satisfy IsConflict")
	}
	if !IsNotFound(NotFound("node", "node-1")) {
		t.Error("NotFound should satisfy IsNotFound")
	}
	if !IsNotFound(fmt.Errorf("lookup: %w", NotFound("node", "n"))) {
		t.Error("wrapped NotFound should satisfy IsNotFound")
	}
	if IsInvalidSpec(errors.New("boom")) {
		t.Error("arbitrary error should not satisfy IsInvalidSpec")
	}
}
