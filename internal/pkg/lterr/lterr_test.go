package lterr

import "testing"

func TestImmutable(t *testing.T) {
	e := New(400, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")
	changedE := e.Msg("%s", "changed")
	if e.Message == "changed" {
		t.Errorf("Expected immutable error with message not equal to 'changed', got '%s'", e.Message)
	}
	if changedE.Message != "changed" {
		t.Errorf("Expected immutable error with message equal to 'changed', got '%s'", changedE.Message)
	}
}

func TestSentinelsKeepTheirCodes(t *testing.T) {
	derived := ErrDataIntegrity.Msg("draw on row %d has no parseable date", 42)
	if derived.ErrorCode != CodeDataIntegrity {
		t.Errorf("Expected derived error to keep code %s, got %s", CodeDataIntegrity, derived.ErrorCode)
	}
	if ErrDataIntegrity.Message == derived.Message {
		t.Error("Expected sentinel message to be untouched by Msg")
	}
	if ErrDataIntegrity.StatusCode != 422 {
		t.Errorf("Expected data integrity errors to map to 422, got %d", ErrDataIntegrity.StatusCode)
	}
}
