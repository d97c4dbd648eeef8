// Package roast computes rate-of-rise statistics for a coffee roast.
//
// The pipeline turns four raw (temperature, MM:SS) pairs into parsed
// checkpoints, checks their temporal and thermal ordering, and derives
// duration, rate per minute and share of total time for the three phases
// TP→Yellow, Yellow→FC and FC→Drop. Every step is a pure function; the
// package holds no state between calls and performs no I/O or logging.
//
// The first error wins. Parse errors are reported in stage order, then the
// temporal check runs, then the thermal check.
package roast
