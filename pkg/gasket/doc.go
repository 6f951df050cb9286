// Package gasket grows an Apollonian gasket from three seed curvatures.
//
// # Overview
//
// A [Generator] starts from the seed quadruple produced by
// [geom.PlaceInitialTriple]: the enclosing circle followed by the three placed
// circles. [Generator.Generate] then fills the curvilinear gaps recursively
// using [geom.SecondSolution]:
//
//   - Depth 0 runs once on the seed. It adds the circle in the central gap
//     (the other solution to the three placed circles) and the three circles
//     in the outer gaps between the enclosing circle and each pair of placed
//     circles. Each of these four starts an independent subtree at depth 1.
//   - Every deeper node (a, b, c, d), where a is the newest circle, adds the
//     three circles that replace b, c and d in turn, and recurses into each
//     while depth < maxDepth.
//
// The resulting sequence is depth-first and left-to-right. For depth D it holds
// exactly [Count](D) = 2·3^D + 2 circles, the four seed circles first.
//
// # Concurrency
//
// Subtrees are expanded with an explicit work stack by [Expand], a pure
// function returning a fresh [Branch]. With [WithParallel] the four depth-0
// subtrees run on separate goroutines and their branches are concatenated in
// order afterwards, so the output is identical to a sequential run.
//
// # Generation tree
//
// [Generator.Parents] records which circle spawned each circle. [DOT] and
// [RenderTreeSVG] turn that into a Graphviz drawing for debugging.
//
// [geom.PlaceInitialTriple]: github.com/matzehuels/apollon/pkg/geom.PlaceInitialTriple
// [geom.SecondSolution]: github.com/matzehuels/apollon/pkg/geom.SecondSolution
package gasket
