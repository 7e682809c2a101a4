package errors

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Op:   "scene.Load",
		Kind: KindParsing,
		Err:  &ParseError{File: "bounce.yaml", Field: "animations[0].kind", Got: "wobble"},
	}
	got := err.Error()
	if !strings.HasPrefix(got, "scene.Load [parsing]: ") {
		t.Errorf("Error() = %q, want op and kind prefix", got)
	}
}

func TestErrorWithSource(t *testing.T) {
	err := &Error{
		Op:     "scene.Load",
		Kind:   KindConfig,
		Source: "bounce.yaml",
		Err:    &ParseError{File: "bounce.yaml", Field: "version", Got: "2"},
	}
	want := "source=bounce.yaml"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := &ParseError{File: "a.toml", Field: "fps", Got: -1}
	err := &Error{Op: "scene.Load", Kind: KindConfig, Err: inner}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindParsing, "parsing"},
		{KindTick, "tick"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "animation.Controller.Tick"
	if got, want := err.Error(), "panic in animation.Controller.Tick: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestParseErrorString(t *testing.T) {
	err := &ParseError{File: "scene.yaml", Field: "fps", Got: 0}
	want := "invalid fps in scene.yaml: got 0 (int)"
	if got := err.Error(); got != want {
		t.Errorf("ParseError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *Error
	handler := &testHandler{onError: func(err *Error) { captured = err }}

	old := DefaultHandler
	SetHandler(handler)
	defer SetHandler(old)

	Report(&Error{Op: "test.op", Kind: KindTick})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	handler := &testHandler{
		onError: func(*Error) { called = true },
		onPanic: func(*PanicError) { called = true },
	}
	old := DefaultHandler
	SetHandler(handler)
	defer SetHandler(old)

	Report(nil)
	ReportPanic(nil)
	if called {
		t.Error("nil reports should not reach the handler")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	handler := &testHandler{onPanic: func(err *PanicError) { captured = err }}

	old := DefaultHandler
	SetHandler(handler)
	defer SetHandler(old)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	old := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(old)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback received %v, want 42", got)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "TestCaptureStack") {
		t.Errorf("stack trace should start at the caller, got: %s", stack)
	}
	if strings.Contains(stack, "runtime.") || strings.Contains(stack, pkgPath+"CaptureStack") {
		t.Errorf("stack trace should skip runtime and helper frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerWritesEvents(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Verbose: true, Logger: zerolog.New(&buf)}

	h.HandleError(&Error{
		Op:         "scene.Load",
		Kind:       KindConfig,
		Source:     "a.yaml",
		Err:        &ParseError{File: "a.yaml", Field: "fps", Got: 0},
		StackTrace: "main.main",
	})

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if event["op"] != "scene.Load" || event["kind"] != "config" || event["source"] != "a.yaml" {
		t.Errorf("unexpected event fields: %v", event)
	}
	if event["stack"] != "main.main" {
		t.Errorf("verbose handler should include the stack, got %v", event["stack"])
	}

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "tick", Value: "boom"})
	if !strings.Contains(buf.String(), `"value":"boom"`) {
		t.Errorf("panic event missing value: %s", buf.String())
	}
}

type testHandler struct {
	onError func(*Error)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *Error) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
