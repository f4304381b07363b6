package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"edurooms/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "date must follow YYYY-MM-DD",
	}

	if f.Error() != "date must follow YYYY-MM-DD" {
		t.Errorf("expected error message to be 'date must follow YYYY-MM-DD', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind failure.Kind
	}{
		{name: "format", err: failure.Format("bad date"), code: http.StatusBadRequest, kind: failure.KindFormat},
		{name: "validation", err: failure.BadRequestFromString("end before start"), code: http.StatusBadRequest, kind: failure.KindValidation},
		{name: "conflict", err: failure.Conflict("room already booked"), code: http.StatusBadRequest, kind: failure.KindConflict},
		{name: "fetch", err: failure.Fetch("holiday feed unreachable"), code: http.StatusBadRequest, kind: failure.KindFetch},
		{name: "not found", err: failure.NotFound("reservation not found"), code: http.StatusNotFound, kind: failure.KindNotFound},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, kind: failure.KindUnauthorized},
		{name: "forbidden", err: failure.Forbidden("not the owner"), code: http.StatusForbidden, kind: failure.KindForbidden},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, kind: failure.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}

			if !failure.IsKind(tt.err, tt.kind) {
				t.Errorf("expected kind %s for %v", tt.kind, tt.err)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected BadRequest(nil) to be nil")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected InternalError(nil) to be nil")
	}
}

func TestGetCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("create reservation: %w", failure.Conflict("room already booked"))

	if failure.GetCode(err) != http.StatusBadRequest {
		t.Errorf("expected wrapped conflict to map to 400, got %d", failure.GetCode(err))
	}

	if !failure.IsKind(err, failure.KindConflict) {
		t.Error("expected wrapped error to keep its kind")
	}

	if failure.GetCode(errors.New("plain")) != http.StatusInternalServerError {
		t.Error("expected plain errors to map to 500")
	}

	if failure.IsKind(errors.New("plain"), failure.KindConflict) {
		t.Error("expected plain errors to have no kind")
	}
}
