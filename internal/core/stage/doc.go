// Package stage drives a Simon Sonundrum session.
//
// The Engine asks the rule catalog for one command per stage, judges it with
// the current validator, applies it when it must be followed, and tracks the
// obligations that result: a button to press or a module to solve next. When
// every collaborating module is solved the engine gives a final command whose
// required press solves the module.
//
// Every operation holds the engine lock for its whole duration, so the current
// validator is read and replaced atomically. Boundary outputs are called while
// the lock is held and must not call back into the engine.
package stage
