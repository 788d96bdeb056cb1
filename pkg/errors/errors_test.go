package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNewAndIs(t *testing.T) {
	err := New(ErrCodeInvalidFilter, "unknown entity type: %s", "widget")

	if !Is(err, ErrCodeInvalidFilter) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is should not match a different code")
	}
	if err.Error() != "INVALID_FILTER: unknown entity type: widget" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch graph from %s", "https://backend")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause should survive errors.Is")
	}
	if GetCode(err) != ErrCodeNetwork {
		t.Errorf("GetCode = %q", GetCode(err))
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeSnapshotNotFound, "no snapshot %s", "abc")
	outer := fmt.Errorf("loading: %w", inner)

	if !Is(outer, ErrCodeSnapshotNotFound) {
		t.Error("Is should unwrap standard wrapping")
	}
	if GetCode(outer) != ErrCodeSnapshotNotFound {
		t.Error("GetCode should unwrap standard wrapping")
	}
}

func TestGetCodePlainError(t *testing.T) {
	if GetCode(stderrors.New("plain")) != "" {
		t.Error("plain errors have no code")
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: %q", "gif")
	if UserMessage(err) != `invalid format: "gif"` {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}

	plain := stderrors.New("boom")
	if UserMessage(plain) != "boom" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
}
