package errors

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestErrorString(t *testing.T) {
	err := &Error{
		Op:   "frame.RunLayout",
		Kind: KindLayout,
		Err:  errors.New("no strategy"),
	}
	got := err.Error()
	if !strings.Contains(got, "frame.RunLayout") || !strings.Contains(got, "[layout]") {
		t.Errorf("error string %q missing op or kind", got)
	}
}

func TestErrorStringWithNode(t *testing.T) {
	err := &Error{
		Op:   "scope.Detach",
		Kind: KindScene,
		Err:  errors.New("not a child"),
		Node: "node(3:1)",
	}
	if got := err.Error(); !strings.Contains(got, "node=node(3:1)") {
		t.Errorf("error string %q should carry the node", got)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindScene, "scene"},
		{KindMount, "mount"},
		{KindLayout, "layout"},
		{KindState, "state"},
		{KindEffect, "effect"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
		{ErrorKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &Error{Op: "op", Err: inner}
	if !errors.Is(err, inner) {
		t.Error("Error should unwrap to the inner error")
	}

	mount := &MountError{Widget: "Text", Err: inner}
	if !errors.Is(mount, inner) {
		t.Error("MountError should unwrap to the inner error")
	}
}

func TestMountErrorString(t *testing.T) {
	panicked := &MountError{Widget: "widgets.Text", Node: "node(1:0)", Recovered: "boom"}
	if got := panicked.Error(); !strings.Contains(got, "panic mounting widgets.Text") {
		t.Errorf("panic mount error = %q", got)
	}

	failed := &MountError{Widget: "widgets.Text", Node: "node(1:0)", Err: errors.New("bad attach")}
	if got := failed.Error(); !strings.Contains(got, "error mounting") || !strings.Contains(got, "bad attach") {
		t.Errorf("mount error = %q", got)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Op: "scope.Attach", Value: "boom"}
	if got := err.Error(); !strings.Contains(got, "scope.Attach") || !strings.Contains(got, "boom") {
		t.Errorf("panic error = %q", got)
	}
	bare := &PanicError{Value: 42}
	if got := bare.Error(); !strings.Contains(got, "42") {
		t.Errorf("bare panic error = %q", got)
	}
}

type recordingHandler struct {
	errs   []*Error
	panics []*PanicError
	mounts []*MountError
}

func (h *recordingHandler) HandleError(e *Error)           { h.errs = append(h.errs, e) }
func (h *recordingHandler) HandlePanic(e *PanicError)      { h.panics = append(h.panics, e) }
func (h *recordingHandler) HandleMountError(e *MountError) { h.mounts = append(h.mounts, e) }

func TestReportStampsTimestamp(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&Error{Op: "op", Kind: KindState, Err: errors.New("x")})
	if len(h.errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(h.errs))
	}
	if h.errs[0].Timestamp.IsZero() {
		t.Error("Report should stamp a zero timestamp")
	}

	fixed := time.Unix(100, 0)
	Report(&Error{Op: "op", Err: errors.New("y"), Timestamp: fixed})
	if !h.errs[1].Timestamp.Equal(fixed) {
		t.Error("Report must not overwrite an explicit timestamp")
	}
}

func TestReportNilIsNoop(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(nil)
	ReportPanic(nil)
	ReportMountError(nil)
	if len(h.errs)+len(h.panics)+len(h.mounts) != 0 {
		t.Error("nil reports must be dropped")
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	SetHandler(&recordingHandler{})
	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("DefaultHandler = %T, want *LogHandler", DefaultHandler)
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("test.op")
		panic("boom")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("recovered %d panics, want 1", len(h.panics))
	}
	p := h.panics[0]
	if p.Op != "test.op" || p.Value != "boom" {
		t.Errorf("panic = %+v", p)
	}
	if p.StackTrace == "" {
		t.Error("recovered panic should carry a stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	h := &recordingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	var got any
	func() {
		defer RecoverWithCallback("test.op", func(r any) { got = r })
		panic("boom")
	}()

	if got != "boom" {
		t.Errorf("callback value = %v, want \"boom\"", got)
	}
	if len(h.panics) != 1 {
		t.Errorf("recovered %d panics, want 1", len(h.panics))
	}
}

func TestCaptureStackIncludesCaller(t *testing.T) {
	var stack string
	func() {
		defer func() {
			recover()
			stack = CaptureStack()
		}()
		panic("x")
	}()
	if !strings.Contains(stack, "errors") {
		t.Errorf("stack trace %q should include this package's frames", stack)
	}
}
