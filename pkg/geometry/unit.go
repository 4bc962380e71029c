package geometry

// Unit is a size or offset with an absolute part and a part relative to the
// parent's content area. A width of "50% plus 10px" is Unit{Abs: 10, Rel: 0.5}.
type Unit struct {
	Abs float64
	Rel float64
}

// Px returns a purely absolute unit.
func Px(v float64) Unit {
	return Unit{Abs: v}
}

// Frac returns a unit relative to the parent size.
func Frac(v float64) Unit {
	return Unit{Rel: v}
}

// Resolve computes the concrete value against the parent extent.
func (u Unit) Resolve(parent float64) float64 {
	return u.Abs + u.Rel*parent
}

// Unit2 is a two-dimensional unit resolved against a parent content area.
type Unit2 struct {
	X Unit
	Y Unit
}

// Px2 returns a purely absolute 2D unit.
func Px2(x, y float64) Unit2 {
	return Unit2{X: Px(x), Y: Px(y)}
}

// Frac2 returns a purely relative 2D unit.
func Frac2(x, y float64) Unit2 {
	return Unit2{X: Frac(x), Y: Frac(y)}
}

// Resolve computes the concrete vector against the parent content area.
func (u Unit2) Resolve(parent Vec2) Vec2 {
	return Vec2{X: u.X.Resolve(parent.X), Y: u.Y.Resolve(parent.Y)}
}

// IsZero reports whether the unit resolves to zero for every parent size.
func (u Unit2) IsZero() bool {
	return u == Unit2{}
}
