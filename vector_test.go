package isle

import "testing"

func TestVector_Clone(t *testing.T) {
	v := Vector{1, 2, 3}
	c := v.Clone()
	c[0] = 99
	if v[0] != 1 {
		t.Fatal("Clone must return an independent copy")
	}
	if Vector(nil).Clone() != nil {
		t.Fatal("nil clone should stay nil")
	}
}

func TestBounds_Validate(t *testing.T) {
	if err := Uniform(3, -5, 5).Validate(); err != nil {
		t.Fatalf("valid bounds rejected: %v", err)
	}
	if err := (Bounds{Lo: Vector{0, 0}, Hi: Vector{1}}).Validate(); err == nil {
		t.Fatal("mismatched dimensions should fail")
	}
	if err := (Bounds{}).Validate(); err == nil {
		t.Fatal("empty bounds should fail")
	}
	if err := (Bounds{Lo: Vector{2}, Hi: Vector{1}}).Validate(); err == nil {
		t.Fatal("inverted bounds should fail")
	}
}

func TestBounds_Contains(t *testing.T) {
	b := Uniform(2, -1, 1)
	cases := []struct {
		x    Vector
		want bool
	}{
		{Vector{0, 0}, true},
		{Vector{-1, 1}, true},
		{Vector{0, 1.5}, false},
		{Vector{0}, false},
	}
	for _, c := range cases {
		if got := b.Contains(c.x); got != c.want {
			t.Fatalf("Contains(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}

func TestUniform(t *testing.T) {
	b := Uniform(4, -2, 7)
	if b.Dimension() != 4 {
		t.Fatalf("Dimension = %d, want 4", b.Dimension())
	}
	for i := 0; i < 4; i++ {
		if b.Lo[i] != -2 || b.Hi[i] != 7 {
			t.Fatalf("bounds = %v", b)
		}
	}
}
