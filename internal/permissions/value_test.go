package permissions

import "testing"

func TestCombine_Commutative(t *testing.T) {
	values := []Value{None, Read, Write, Manage, Owner, BitWrite, BitManage}

	for _, a := range values {
		for _, b := range values {
			if Combine(a, b) != Combine(b, a) {
				t.Errorf("Combine(%b, %b) != Combine(%b, %b)", a, b, b, a)
			}
		}
	}
}

func TestCombine_UnionSemantics(t *testing.T) {
	caps := []Value{BitRead, BitWrite, BitManage}
	values := []Value{None, Read, Write, Manage, BitWrite, BitManage}

	// Contains(Combine(a,b), x) iff Contains(a,x) || Contains(b,x)
	for _, a := range values {
		for _, b := range values {
			combined := Combine(a, b)
			for _, cap := range caps {
				want := a.Contains(cap) || b.Contains(cap)
				if got := combined.Contains(cap); got != want {
					t.Errorf("Combine(%b, %b).Contains(%b) = %v, want %v", a, b, cap, got, want)
				}
			}
		}
	}
}

func TestContains_Levels(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		cap   Value
		want  bool
	}{
		{"none contains nothing", None, BitRead, false},
		{"read contains read", Read, BitRead, true},
		{"read does not contain write", Read, BitWrite, false},
		{"write implies read", Write, Read, true},
		{"write does not contain manage", Write, BitManage, false},
		{"manage implies write", Manage, Write, true},
		{"manage implies read", Manage, Read, true},
		{"zero capability always contained", Read, None, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Contains(tt.cap); got != tt.want {
				t.Errorf("Value(%b).Contains(%b) = %v, want %v", tt.value, tt.cap, got, tt.want)
			}
		})
	}
}

func TestOwner_ContainsEverything(t *testing.T) {
	for _, cap := range []Value{None, BitRead, BitWrite, BitManage, Read, Write, Manage, Owner} {
		if !Owner.Contains(cap) {
			t.Errorf("Owner.Contains(%b) = false, want true", cap)
		}
	}

	if !Owner.IsOwner() {
		t.Error("Owner.IsOwner() = false")
	}
	if Manage.IsOwner() {
		t.Error("Manage.IsOwner() = true, want false")
	}
}

func TestCombine_OwnerAbsorbs(t *testing.T) {
	if got := Combine(Owner, Read); !got.IsOwner() {
		t.Errorf("Combine(Owner, Read) = %b, want owner sentinel", got)
	}
}
