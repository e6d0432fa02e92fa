// Package timedata holds measured fraction-remaining series and the
// thermogram loader that produces them.
//
// A TimeData carries time (s), temperature (K), fraction remaining g and its
// standard deviation, all of one length and time-ordered. It satisfies
// model.TimeSource, so a model can be built straight from it, and it can
// score any model's forward prediction against its own g.
package timedata
