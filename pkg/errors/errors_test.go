package errors

import (
	"bytes"
	goerrors "errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLiteErrorString(t *testing.T) {
	err := &LiteError{
		Op:   "component.Mount",
		Kind: KindTemplate,
		Err:  goerrors.New("missing Count.html"),
	}
	got := err.Error()
	want := "component.Mount [template]: missing Count.html"
	if got != want {
		t.Errorf("LiteError.Error() = %q, want %q", got, want)
	}
}

func TestLiteErrorWithComponent(t *testing.T) {
	err := &LiteError{
		Op:        "component.Mount",
		Kind:      KindInit,
		Component: "count-component",
		Err:       goerrors.New("boom"),
	}
	want := "component=count-component"
	if got := err.Error(); !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestLiteErrorUnwrap(t *testing.T) {
	inner := goerrors.New("inner")
	err := &LiteError{Op: "persist.Save", Kind: KindStorage, Err: inner}
	if !goerrors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInit, "init"},
		{KindRender, "render"},
		{KindPanic, "panic"},
		{KindTemplate, "template"},
		{KindConfig, "config"},
		{KindStorage, "storage"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic"}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
	err.Op = "core.flushEffects"
	if got, want := err.Error(), "panic in core.flushEffects: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *LiteError
	prev := SetHandler(&testHandler{onError: func(err *LiteError) { captured = err }})
	defer SetHandler(prev)

	Report(&LiteError{Op: "test.op", Kind: KindInit, Err: goerrors.New("x")})

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

func TestRecover(t *testing.T) {
	var captured *PanicError
	prev := SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(prev)

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

func TestGuard(t *testing.T) {
	var panics int
	prev := SetHandler(&testHandler{onPanic: func(*PanicError) { panics++ }})
	defer SetHandler(prev)

	if ok := Guard("test.guard", func() {}); !ok {
		t.Error("Guard reported a panic for a clean call")
	}
	if ok := Guard("test.guard", func() { panic("x") }); ok {
		t.Error("Guard did not report the panic")
	}
	if panics != 1 {
		t.Errorf("panics = %d, want 1", panics)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Fatal("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	prev := SetHandler(nil)
	defer SetHandler(prev)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerWritesRecord(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	h.HandleError(&LiteError{
		Op:        "component.Mount",
		Kind:      KindTemplate,
		Component: "app-component",
		Err:       goerrors.New("not found"),
		Timestamp: time.Now(),
	})
	h.HandlePanic(&PanicError{Op: "core.flushEffects", Value: "bad"})

	out := buf.String()
	for _, want := range []string{"op=component.Mount", "kind=template", "component=app-component", "op=core.flushEffects", "value=bad"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

type testHandler struct {
	onError func(*LiteError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *LiteError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
