package cext

import "testing"

func TestConvention_Names(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Conventions() {
		name := c.String()
		if seen[name] {
			t.Errorf("duplicate convention name %q", name)
		}
		seen[name] = true

		parsed, err := ParseConvention(name)
		if err != nil {
			t.Fatalf("ParseConvention(%q): %v", name, err)
		}
		if parsed != c {
			t.Errorf("ParseConvention(%q) = %v, want %v", name, parsed, c)
		}
	}
	if _, err := ParseConvention("nope"); err == nil {
		t.Error("expected error for an unknown name")
	}
	if got := Convention(200).String(); got != "Convention(200)" {
		t.Errorf("String() = %q", got)
	}
}

func TestConvention_Signature(t *testing.T) {
	tests := []struct {
		conv Convention
		want string
	}{
		{NoArgs, "(self)"},
		{SingleArg, "(self, arg)"},
		{VarArgs, "(self, *args)"},
		{FastCallKeywords, "(self, *args, **kwargs)"},
		{RichCompare, "(self, other, op)"},
		{RichCompareFixedOp, "(self, other)"},
		{Direct, "(*args, **kwargs)"},
	}
	for _, tt := range tests {
		if got := tt.conv.Signature().String(); got != tt.want {
			t.Errorf("%s signature = %s, want %s", tt.conv, got, tt.want)
		}
	}
}

func TestConvention_DefaultValidators(t *testing.T) {
	if _, ok := AttrSet.defaultValidator().(PrimitiveResult); !ok {
		t.Error("setattr should use the -1 contract")
	}
	if _, ok := IterNext.defaultValidator().(IterNextResult); !ok {
		t.Error("iternext should use the StopIteration contract")
	}
	if _, ok := VarArgs.defaultValidator().(ObjectResult); !ok {
		t.Error("varargs should use the NULL contract")
	}
}

func TestCompareOpString(t *testing.T) {
	want := []string{"<", "<=", "==", "!=", ">", ">="}
	for op, s := range want {
		if got, ok := CompareOpString(op); !ok || got != s {
			t.Errorf("CompareOpString(%d) = %q, want %q", op, got, s)
		}
	}
	if _, ok := CompareOpString(6); ok {
		t.Error("opcode 6 should be invalid")
	}
}
