// Package alarm contains the radioactivity alarm monitor.
//
// A Monitor pulls one reading per evaluation from its sensor and latches the
// alarm as soon as a reading leaves the safe range [LowThreshold, HighThreshold].
// Bounds are inclusive: readings equal to a threshold are safe. Once triggered the
// alarm stays on for the lifetime of the Monitor, while the trigger count keeps
// growing with every out-of-range reading.
package alarm
