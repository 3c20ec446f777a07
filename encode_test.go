package mustache

import "testing"

type encodeTestUser struct {
	Name string
	Age  int
	tags []string // unexported, must not appear in the encoded Map
}

func TestEncodeStruct(t *testing.T) {
	v, err := Encode(encodeTestUser{Name: "Ada", Age: 30, tags: []string{"x"}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v.Kind() != KindMap {
		t.Fatalf("Kind() = %v, want KindMap", v.Kind())
	}
	m := v.AsMap()
	if m["Name"].AsString() != "Ada" {
		t.Fatalf("Name = %v", m["Name"])
	}
	if m["Age"].AsString() != "30" {
		t.Fatalf("Age = %v", m["Age"])
	}
	if _, ok := m["tags"]; ok {
		t.Fatal("unexported field leaked into encoded Map")
	}
}

func TestEncodeSliceAndPointer(t *testing.T) {
	users := []*encodeTestUser{{Name: "A"}, {Name: "B"}}
	v, err := Encode(users)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	list := v.AsList()
	if len(list) != 2 || list[0].AsMap()["Name"].AsString() != "A" {
		t.Fatalf("list = %+v", list)
	}
}

func TestEncodeNil(t *testing.T) {
	v, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v.Kind() != KindOption {
		t.Fatalf("Kind() = %v, want KindOption", v.Kind())
	}
	if _, ok := v.Some(); ok {
		t.Fatal("Encode(nil) should be None")
	}
}

func TestEncodeStringLambda(t *testing.T) {
	v, err := Encode(func(s string) string { return s + "!" })
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v.Kind() != KindLambda {
		t.Fatalf("Kind() = %v, want KindLambda", v.Kind())
	}
	out, err := v.CallLambda("hi")
	if err != nil || out != "hi!" {
		t.Fatalf("CallLambda = %q, %v", out, err)
	}
}

func TestEncodeMapStringKeys(t *testing.T) {
	v, err := Encode(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if v.AsMap()["a"].AsString() != "1" {
		t.Fatalf("map = %+v", v.AsMap())
	}
}

func TestEncodeRejectsNonStringMapKeys(t *testing.T) {
	_, err := Encode(map[int]string{1: "a"})
	if err == nil {
		t.Fatal("expected an error for non-string map keys")
	}
}
