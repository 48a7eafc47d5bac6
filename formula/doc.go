// Package formula parses chemical formula strings, judges them against an
// element registry, and rewrites them into a canonical element order.
//
// Everything here is best-effort: malformed input degrades to an empty or
// partial parse, never to an error, so one noisy row cannot stop a batch.
package formula
