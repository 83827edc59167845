// Package rule defines the commands Simon gives and the predicates that decide
// whether a command must be followed.
//
// A Rule is an immutable value: display text plus an effect (Apply) and a
// legality predicate (IsAllowed). Juxtaposition rules embed two other rules and
// delegate to exactly one of them depending on whether the previous command was
// followed.
//
// A Validator is the current "when do I follow commands" predicate. Applying a
// rule may replace it; replacements that depend on the old validator capture it
// as a value at the moment of replacement, so later replacements never leak
// into an already-built predicate.
package rule
