// Package runtime implements the expansion engine: recursive symbol resolution with
// variable substitution and a depth guard.
//
// The engine never fails on content problems. An undefined symbol becomes an
// [UNDEFINED:symbol] marker (or the bare symbol when undefined symbols are allowed) and a
// symbol reached at the depth limit becomes a [MAX_DEPTH:symbol] marker, so a run always
// terminates with text. The depth counter, not the host call stack, is the only
// termination authority.
package runtime
