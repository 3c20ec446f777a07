package mustache

import "testing"

func TestStackFindRootedOnce(t *testing.T) {
	inner := Map(map[string]Value{
		"name": Str("inner-name"),
	})
	outer := Map(map[string]Value{
		"name":  Str("outer-name"),
		"child": inner,
	})

	stack := NewStack(outer)
	stack.Push(inner)

	// "name" resolves from the innermost frame containing it.
	v, ok := stack.Find([]string{"name"})
	if !ok || v.AsString() != "inner-name" {
		t.Fatalf("Find(name) = %v, %v; want inner-name, true", v, ok)
	}

	// "child.name" must resolve "child" against the stack, then walk
	// "name" strictly within that resolved value — not search the stack
	// again, so it reaches the outer map's "child.name", not inner's.
	stack2 := NewStack(outer)
	v2, ok2 := stack2.Find([]string{"child", "name"})
	if !ok2 || v2.AsString() != "inner-name" {
		t.Fatalf("Find(child.name) = %v, %v; want inner-name, true", v2, ok2)
	}

	// A path that resolves its first segment but dead-ends partway
	// through must fail entirely, not fall back to searching the stack
	// for the tail segment.
	stack3 := NewStack(outer)
	_, ok3 := stack3.Find([]string{"child", "missing", "name"})
	if ok3 {
		t.Fatalf("Find(child.missing.name) succeeded; want failure")
	}
}

func TestStackFindEmptyPathIsTop(t *testing.T) {
	stack := NewStack(Str("root"))
	stack.Push(Str("top"))
	v, ok := stack.Find(nil)
	if !ok || v.AsString() != "top" {
		t.Fatalf("Find(nil) = %v, %v; want top, true", v, ok)
	}
}

func TestStackFindMiss(t *testing.T) {
	stack := NewStack(Map(map[string]Value{"a": Str("1")}))
	if _, ok := stack.Find([]string{"b"}); ok {
		t.Fatal("Find(b) succeeded; want failure")
	}
}

func TestValueEqual(t *testing.T) {
	cases := []struct {
		name  string
		a, b  Value
		equal bool
	}{
		{"str-eq", Str("x"), Str("x"), true},
		{"str-neq", Str("x"), Str("y"), false},
		{"bool-eq", Bool(true), Bool(true), true},
		{"kind-mismatch", Str("1"), Bool(true), false},
		{"list-eq", List(Str("a"), Str("b")), List(Str("a"), Str("b")), true},
		{"list-len-mismatch", List(Str("a")), List(Str("a"), Str("b")), false},
		{"option-some-eq", Some(Str("x")), Some(Str("x")), true},
		{"option-none-eq", None(), None(), true},
		{"option-mismatch", Some(Str("x")), None(), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.equal {
				t.Fatalf("Equal() = %v, want %v", got, c.equal)
			}
		})
	}
}

func TestValueEqualLambdaPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic comparing Lambda values")
		}
	}()
	l := NewLambda(func(s string) (string, error) { return s, nil })
	l.Equal(l)
}

func TestIsFalsyForInverted(t *testing.T) {
	cases := []struct {
		name  string
		v     Value
		falsy bool
	}{
		{"bool-false", Bool(false), true},
		{"bool-true", Bool(true), false},
		{"empty-list", List(), true},
		{"nonempty-list", List(Str("x")), false},
		{"none", None(), true},
		{"some", Some(Str("x")), false},
		{"empty-string", Str(""), false}, // deliberately not falsy, see DESIGN.md
		{"map", Map(nil), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isFalsyForInverted(c.v); got != c.falsy {
				t.Fatalf("isFalsyForInverted() = %v, want %v", got, c.falsy)
			}
		})
	}
}
