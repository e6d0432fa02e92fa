// Package ratedata holds the result of the final inversion: an
// activation-energy distribution (EnergyComplex) fitted to a measured
// fraction-remaining curve at a chosen regularization strength, together
// with peak detection and summary statistics over it.
package ratedata
