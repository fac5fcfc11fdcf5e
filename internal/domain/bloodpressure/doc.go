// Package bloodpressure classifies a blood pressure reading into one of four
// categories taken from the standard adult reference chart.
//
// The package is pure: Classify, Explain and Label have no side effects and no
// shared mutable state, so they are safe to call from any number of goroutines.
// Range limits on the individual values are declared on Reading as validate tags
// and are enforced by the request layer; Classify itself only rejects readings
// whose systolic value does not exceed the diastolic value.
package bloodpressure
