// Package module runs one Simon Sonundrum instance on a bomb.
//
// A Module wires the stage engine to its surroundings: the bomb it polls for
// solves, the screen that shows Simon's statement and the stage counter, and
// the metrics it reports. Run drives the poll loop until its context ends;
// presses, chat commands and forced solves may arrive concurrently from any
// front-end.
package module
