// Package delay controls a Pico based programmable delay generator.
package delay

// The device is driven over a serial link with an ASCII line protocol.
// Parameters are given to this package in physical units (nanoseconds,
// or a raw count for repeats) and converted to device clock cycles
// (one cycle = 5ns) before transmission:
//
//	S o 20 l 4 \n    set offset=100ns, length=20ns
//	OK
//	G o\n            get offset
//	20               device units, 100ns
//
// Producer: host tooling (delayctl, delaysh, delayd)
// Consumer: delay generator firmware
