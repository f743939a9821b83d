package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageIncludesFields(t *testing.T) {
	err := NewValidation("invalid input", "name", "email")
	want := "invalid input (fields: name, email)"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	plain := NewInvalidState("session is completed")
	if plain.Error() != "session is completed" {
		t.Errorf("got %q", plain.Error())
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{NewValidation("bad"), KindValidation},
		{ErrNotOwner, KindAuthorization},
		{ErrSessionNotFound, KindNotFound},
		{NewInvalidState("nope"), KindInvalidState},
		{NewOperationFailed("nope", nil), KindOperationFailed},
		{NewStorage(errors.New("down")), KindStorage},
		{errors.New("unclassified"), KindStorage},
		{fmt.Errorf("wrapped: %w", ErrProjectNotFound), KindNotFound},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v): got %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewStorage(inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped error should be reachable via errors.Is")
	}
}
