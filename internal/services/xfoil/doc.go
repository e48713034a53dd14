// Package xfoil drives the XFoil aerodynamic solver as a child process. XFoil
// has no machine interface; commands are fed through stdin and results are
// read back from the polar accumulation files it writes.
package xfoil
