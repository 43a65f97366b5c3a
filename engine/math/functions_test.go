package math

import (
	m "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const tolerance float32 = 1e-5

func fromMgl(ref mgl32.Mat4) Mat4 {
	return Mat4{Data: [16]float32(ref)}
}

func sampleMatrix() Mat4 {
	out := Mat4{}
	for i := range out.Data {
		out.Data[i] = float32(i+1) * 0.5
	}
	return out
}

func TestMat4IdentityIsNeutral(t *testing.T) {
	cases := map[string]Mat4{
		"sample":      sampleMatrix(),
		"translation": NewMat4Translation(NewVec3(1, 2, 3)),
		"rotation":    NewMat4RotationY(33),
		"perspective": NewMat4Perspective(DegToRad(67), 4.0/3.0, 0.1, 100),
	}
	for name, mt := range cases {
		t.Run(name, func(t *testing.T) {
			if got := NewMat4Identity().Mul(mt); got != mt {
				t.Fatalf("identity*m = %v, want %v", got, mt)
			}
			if got := mt.Mul(NewMat4Identity()); got != mt {
				t.Fatalf("m*identity = %v, want %v", got, mt)
			}
		})
	}
}

func TestMat4IdentityLayout(t *testing.T) {
	id := NewMat4Identity()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			want := float32(0)
			if row == col {
				want = 1
			}
			if got := id.At(row, col); got != want {
				t.Fatalf("identity(%d,%d) = %v, want %v", row, col, got, want)
			}
		}
	}
}

func TestMat4TranslationZeroIsIdentity(t *testing.T) {
	if got := NewMat4Translation(NewVec3Zero()); got != NewMat4Identity() {
		t.Fatalf("translation(0) = %v, want identity", got)
	}
}

func TestMat4TranslationMovesPoint(t *testing.T) {
	offset := NewVec3(1, -2, 3.5)
	tr := NewMat4Translation(offset)

	if tr.At(0, 3) != 1 || tr.At(1, 3) != -2 || tr.At(2, 3) != 3.5 {
		t.Fatalf("translation column = %v", tr.Data[12:15])
	}

	got := NewVec3(4, 5, 6).Transform(tr)
	want := NewVec3(5, 3, 9.5)
	if got != want {
		t.Fatalf("translated point = %v, want %v", got, want)
	}
	if ref := fromMgl(mgl32.Translate3D(1, -2, 3.5)); ref != tr {
		t.Fatalf("translation = %v, mathgl = %v", tr, ref)
	}
}

func TestMat4RotationYFullTurns(t *testing.T) {
	if got := NewMat4RotationY(0); got != NewMat4Identity() {
		t.Fatalf("rotationY(0) = %v, want identity", got)
	}
	if got := NewMat4RotationY(360); !got.Compare(NewMat4Identity(), tolerance) {
		t.Fatalf("rotationY(360) = %v, want identity", got)
	}
	if got := NewMat4RotationY(-720); !got.Compare(NewMat4Identity(), tolerance) {
		t.Fatalf("rotationY(-720) = %v, want identity", got)
	}
}

func TestMat4RotationYDirection(t *testing.T) {
	r := NewMat4RotationY(90)

	// +Z turns toward +X.
	if got := NewVec3(0, 0, 1).Transform(r); !got.Compare(NewVec3(1, 0, 0), tolerance) {
		t.Fatalf("rotate +Z by 90 = %v, want +X", got)
	}
	// +X turns toward -Z.
	if got := NewVec3(1, 0, 0).Transform(r); !got.Compare(NewVec3(0, 0, -1), tolerance) {
		t.Fatalf("rotate +X by 90 = %v, want -Z", got)
	}
	// The Y axis is left alone.
	if got := NewVec3(0, 2, 0).Transform(r); !got.Compare(NewVec3(0, 2, 0), tolerance) {
		t.Fatalf("rotate +Y by 90 = %v, want +Y", got)
	}
}

func TestMat4RotationYMatchesMathgl(t *testing.T) {
	for _, deg := range []float32{-135, -10, 0, 15, 45, 90, 270} {
		got := NewMat4RotationY(deg)
		ref := fromMgl(mgl32.HomogRotate3DY(mgl32.DegToRad(deg)))
		if !got.Compare(ref, tolerance) {
			t.Fatalf("rotationY(%v) = %v, mathgl = %v", deg, got, ref)
		}
	}
}

func TestMat4MulMatchesMathgl(t *testing.T) {
	a := NewMat4RotationY(30).Mul(NewMat4Translation(NewVec3(1, 2, 3)))
	b := sampleMatrix()

	ref := fromMgl(mgl32.Mat4(a.Data).Mul4(mgl32.Mat4(b.Data)))
	if got := a.Mul(b); !got.Compare(ref, tolerance) {
		t.Fatalf("a*b = %v, mathgl = %v", got, ref)
	}
}

func TestMat4MulOrderMatters(t *testing.T) {
	r := NewMat4RotationY(90)
	tr := NewMat4Translation(NewVec3(0, 0, -5))

	origin := NewVec3Zero()
	// Translate first, then rotate: (0,0,-5) rotated by 90 lands on (-5,0,0).
	if got := origin.Transform(r.Mul(tr)); !got.Compare(NewVec3(-5, 0, 0), tolerance) {
		t.Fatalf("R*T origin = %v", got)
	}
	// Rotate first, then translate: the origin does not move under R.
	if got := origin.Transform(tr.Mul(r)); !got.Compare(NewVec3(0, 0, -5), tolerance) {
		t.Fatalf("T*R origin = %v", got)
	}
}

func TestMat4MulVec4(t *testing.T) {
	mt := NewMat4Translation(NewVec3(1, 1, 1))

	// Directions (w = 0) ignore translation.
	if got := mt.MulVec4(Vec4{X: 2, Y: 3, Z: 4, W: 0}); got != (Vec4{X: 2, Y: 3, Z: 4, W: 0}) {
		t.Fatalf("direction = %v", got)
	}
	if got := mt.MulVec4(Vec4{X: 2, Y: 3, Z: 4, W: 1}); got != (Vec4{X: 3, Y: 4, Z: 5, W: 1}) {
		t.Fatalf("point = %v", got)
	}
}

func TestMat4SetAt(t *testing.T) {
	mt := Mat4{}
	mt.Set(1, 3, 7)
	if mt.Data[13] != 7 {
		t.Fatalf("Set(1,3) wrote %v", mt.Data)
	}
	if mt.At(1, 3) != 7 {
		t.Fatalf("At(1,3) = %v", mt.At(1, 3))
	}
}

func TestMat4SliceIsColumnMajor(t *testing.T) {
	mt := NewMat4Translation(NewVec3(7, 8, 9))
	data := mt.Slice()
	if len(data) != 16 {
		t.Fatalf("len = %d, want 16", len(data))
	}
	for i := range data {
		if data[i] != mt.Data[i] {
			t.Fatalf("slice[%d] = %v, want %v", i, data[i], mt.Data[i])
		}
	}
	if data[12] != 7 || data[13] != 8 || data[14] != 9 {
		t.Fatalf("translation not in the last column: %v", data)
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(0.5, -1, 2)

	if got := a.Add(b); got != NewVec3(1.5, 1, 5) {
		t.Fatalf("add = %v", got)
	}
	if got := a.Sub(b); got != NewVec3(0.5, 3, 1) {
		t.Fatalf("sub = %v", got)
	}
	if got := a.MulScalar(2); got != NewVec3(2, 4, 6) {
		t.Fatalf("mul = %v", got)
	}
	if got := a.Negate(); got != NewVec3(-1, -2, -3) {
		t.Fatalf("negate = %v", got)
	}
	if !a.Compare(NewVec3(1+K_FLOAT_EPSILON, 2, 3), tolerance) {
		t.Fatalf("compare within tolerance failed")
	}
	if a.Compare(b, tolerance) {
		t.Fatalf("compare of different vectors succeeded")
	}
}

func TestDegRadConversion(t *testing.T) {
	if got := DegToRad(180); !ApproxEqual(got, K_PI, tolerance) {
		t.Fatalf("DegToRad(180) = %v", got)
	}
	if got := RadToDeg(K_HALF_PI); !ApproxEqual(got, 90, 1e-4) {
		t.Fatalf("RadToDeg(pi/2) = %v", got)
	}
	if got := float64(DegToRad(45)); m.Abs(got-m.Pi/4) > 1e-6 {
		t.Fatalf("DegToRad(45) = %v", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("Clamp(5,0,3) = %v", got)
	}
	if got := Clamp(-0.25, 0.0, 1.0); got != 0 {
		t.Fatalf("Clamp(-0.25,0,1) = %v", got)
	}
	if got := Clamp(0.5, 0.0, 1.0); got != 0.5 {
		t.Fatalf("Clamp(0.5,0,1) = %v", got)
	}
}
