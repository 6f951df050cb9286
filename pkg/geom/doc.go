// Package geom provides the circle type and the tangent-circle solver behind
// Apollonian gaskets.
//
// # Circles
//
// A [Circle] is an immutable value: a center [Point] and a signed radius. A
// negative radius marks an enclosing circle, whose drawn interior is the region
// outside its disk. The radius is never zero, so [Circle.Curvature] is always
// defined.
//
// # Descartes Circle Theorem
//
// Given three mutually tangent circles with curvatures k1, k2, k3 there are two
// circles tangent to all three:
//
//	k4 = k1 + k2 + k3 ± 2·sqrt(k1·k2 + k2·k3 + k1·k3)
//
// Centers follow the complex form of the theorem, treating each center as a
// complex number m:
//
//	k4·m4 = k1·m1 + k2·m2 + k3·m3 ± 2·sqrt(k1·m1·k2·m2 + k2·m2·k3·m3 + k1·m1·k3·m3)
//
// [OuterTangentCircle] takes the minus branch, which yields the enclosing
// solution. [SecondSolution] uses the linear form of the same relation: once
// one solution is known, the other follows without square roots, and the
// operation is an involution.
//
// # Seeding
//
// [PlaceInitialTriple] places three circles of given radii on the plane and
// derives the enclosing fourth:
//
//	enclosing, c2, c3, c4, err := geom.PlaceInitialTriple(1, 1, 1)
//
// Triples whose curvatures satisfy x = 2·sqrt(y·z) + y + z would need a
// straight line as fourth circle and are rejected with DEGENERATE_CONFIGURATION.
package geom
