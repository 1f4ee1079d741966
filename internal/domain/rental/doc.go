// Package rental holds the property side of the domain: rooms, their baseline
// meter values, and the cumulative meter readings recorded for each period.
//
// A meter reading is a cumulative snapshot. Usage for a period is the
// reading minus the reading immediately preceding it in period order, or
// minus the room baseline when the room has no earlier reading.
package rental
