// Package rank turns a weight vector and per-item criterion scores into
// a deterministic ranked list, and provides the rank statistics the rest
// of the engine leans on: Kendall's τ, top-N overlap, and Pearson
// correlation.
//
// Ranking is pure and stable: composite score descending, ties broken by
// item id ascending, identical output for identical input. Once weights
// are fixed the scoring pass is embarrassingly parallel across items;
// ItemsParallel fans it out over a bounded errgroup while preserving the
// exact serial ordering.
package rank
