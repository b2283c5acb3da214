package uint128

import "testing"

func TestFrom64(t *testing.T) {
	u := From64(42)
	if u.Hi != 0 || u.Lo != 42 {
		t.Fatalf("From64(42) = {%d, %d}", u.Hi, u.Lo)
	}
	if !From64(0).IsZero() {
		t.Errorf("From64(0) not zero")
	}
	if From64(1).IsZero() {
		t.Errorf("From64(1) reported zero")
	}
}

func TestAddCarry(t *testing.T) {
	u := Uint128{Hi: 0, Lo: ^uint64(0)}
	got := u.Add(From64(1))
	want := Uint128{Hi: 1, Lo: 0}
	if got != want {
		t.Fatalf("max-lo + 1 = {%d, %d}, want {%d, %d}", got.Hi, got.Lo, want.Hi, want.Lo)
	}
}

func TestSubBorrow(t *testing.T) {
	u := Uint128{Hi: 1, Lo: 0}
	got := u.Sub(From64(1))
	want := Uint128{Hi: 0, Lo: ^uint64(0)}
	if got != want {
		t.Fatalf("{1,0} - 1 = {%d, %d}, want {%d, %d}", got.Hi, got.Lo, want.Hi, want.Lo)
	}
	if got := From64(1000).Sub(From64(100)); got != From64(900) {
		t.Errorf("1000 - 100 = %s", got)
	}
}

func TestCmp(t *testing.T) {
	cases := []struct {
		a, b Uint128
		want int
	}{
		{From64(1), From64(2), -1},
		{From64(2), From64(1), 1},
		{From64(7), From64(7), 0},
		{Uint128{Hi: 1, Lo: 0}, From64(^uint64(0)), 1},
		{From64(^uint64(0)), Uint128{Hi: 1, Lo: 0}, -1},
	}
	for _, c := range cases {
		if got := c.a.Cmp(c.b); got != c.want {
			t.Errorf("Cmp(%s, %s) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		u    Uint128
		want string
	}{
		{Uint128{}, "0"},
		{From64(1), "1"},
		{From64(1000), "1000"},
		{From64(^uint64(0)), "18446744073709551615"},
		// 2^64 = 18446744073709551616
		{Uint128{Hi: 1, Lo: 0}, "18446744073709551616"},
		// 2^128 - 1
		{Uint128{Hi: ^uint64(0), Lo: ^uint64(0)}, "340282366920938463463374607431768211455"},
	}
	for _, c := range cases {
		if got := c.u.String(); got != c.want {
			t.Errorf("String({%d, %d}) = %q, want %q", c.u.Hi, c.u.Lo, got, c.want)
		}
	}
}
