package rule

import (
	"strings"
	"testing"
)

func pressRule(prefix string, b Button) Rule {
	return New(ShapeButton, prefix, "Press the "+b.String()+" button.", func(ctx *Context) {
		ctx.RequiredPress = b
	}, nil)
}

func TestTextIsPrefixPlusBody(t *testing.T) {
	for _, prefix := range []string{"", SimonSays} {
		r := pressRule(prefix, TopLeft)
		if r.Text() != r.Prefix()+r.Body() {
			t.Fatalf("Text() = %q, want %q", r.Text(), r.Prefix()+r.Body())
		}
	}
}

func TestSentinelsHaveNoPrefix(t *testing.T) {
	a := DummyApplied()
	b := DummyNotApplied()
	if a.Prefix() != "" || b.Prefix() != "" {
		t.Fatalf("sentinel prefixes = %q, %q, want empty", a.Prefix(), b.Prefix())
	}
	if a.Body() == "" {
		t.Fatal("applied sentinel must have a body")
	}
	if b.Body() != "" {
		t.Fatalf("not-applied sentinel body = %q, want empty", b.Body())
	}
	if a.Shape() != ShapeSentinel || b.Shape() != ShapeSentinel {
		t.Fatal("sentinels must carry the sentinel shape")
	}
}

func TestLeafDefaults(t *testing.T) {
	r := New(ShapeAlternation, "", "noop", nil, nil)
	if !r.IsAllowed(Context{}) {
		t.Fatal("nil allowance should allow the rule")
	}
	ctx := Context{}
	r.Apply(&ctx)
	if ctx.RequiredPress != ButtonNone || ctx.RequiredSolve != "" || ctx.NewValidator != nil {
		t.Fatalf("nil effect changed context: %+v", ctx)
	}
	r.Apply(nil)
}

func TestJuxtaposeBody(t *testing.T) {
	a := pressRule("", TopLeft)
	b := pressRule(SimonSays, BottomRight)
	j := Juxtapose("", a, b)

	want := "If you followed my previous command, Press the top-left button. Otherwise, Press the bottom-right button."
	if j.Body() != want {
		t.Fatalf("Body() = %q, want %q", j.Body(), want)
	}
	if strings.Contains(j.Body(), SimonSays) {
		t.Fatal("embedded prefixes must not leak into the body")
	}
	followed, otherwise, ok := j.Parts()
	if !ok {
		t.Fatal("expected juxtaposition parts")
	}
	if followed.Body() != a.Body() || otherwise.Body() != b.Body() {
		t.Fatal("parts do not match embedded rules")
	}
	if _, _, ok := a.Parts(); ok {
		t.Fatal("leaf rule should have no parts")
	}
}

func TestJuxtaposeAppliesExactlyOneSide(t *testing.T) {
	var followedCalls, otherwiseCalls int
	a := New(ShapeButton, "", "a", func(ctx *Context) {
		followedCalls++
		ctx.RequiredPress = TopLeft
	}, nil)
	b := New(ShapeSolveNext, "", "b", func(ctx *Context) {
		otherwiseCalls++
		ctx.RequiredSolve = "Wires"
	}, nil)
	j := Juxtapose(SimonSays, a, b)

	tests := []struct {
		name            string
		previousApplied bool
		wantFollowed    int
		wantOtherwise   int
		wantPress       Button
		wantSolve       string
	}{
		{"previous followed", true, 1, 0, TopLeft, ""},
		{"previous ignored", false, 0, 1, ButtonNone, "Wires"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			followedCalls, otherwiseCalls = 0, 0
			ctx := Context{PreviousApplied: tt.previousApplied}
			j.Apply(&ctx)
			if followedCalls != tt.wantFollowed || otherwiseCalls != tt.wantOtherwise {
				t.Fatalf("calls = (%d, %d), want (%d, %d)", followedCalls, otherwiseCalls, tt.wantFollowed, tt.wantOtherwise)
			}
			if ctx.RequiredPress != tt.wantPress {
				t.Fatalf("RequiredPress = %v, want %v", ctx.RequiredPress, tt.wantPress)
			}
			if ctx.RequiredSolve != tt.wantSolve {
				t.Fatalf("RequiredSolve = %q, want %q", ctx.RequiredSolve, tt.wantSolve)
			}
		})
	}
}

func TestJuxtaposeAllowance(t *testing.T) {
	allowed := New(ShapeButton, "", "a", nil, nil)
	denied := New(ShapeSolveNext, "", "b", nil, func(Context) bool { return false })

	tests := []struct {
		name  string
		rule  Rule
		stage int
		want  bool
	}{
		{"first stage", Juxtapose("", allowed, allowed), 0, false},
		{"later stage", Juxtapose("", allowed, allowed), 3, true},
		{"followed denied", Juxtapose("", denied, allowed), 3, false},
		{"otherwise denied", Juxtapose("", allowed, denied), 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.IsAllowed(Context{Stage: tt.stage}); got != tt.want {
				t.Fatalf("IsAllowed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShapeString(t *testing.T) {
	if ShapeJuxtaposition.String() != "juxtaposition" {
		t.Fatalf("ShapeJuxtaposition.String() = %q", ShapeJuxtaposition.String())
	}
	if Shape(99).String() != "unspecified" {
		t.Fatalf("unknown shape = %q", Shape(99).String())
	}
}
