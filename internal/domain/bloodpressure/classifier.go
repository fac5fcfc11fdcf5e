package bloodpressure

// Chart thresholds in mmHg.
const (
	lowSystolicBelow  = 90
	lowDiastolicBelow = 60

	idealSystolicMax  = 120
	idealDiastolicMax = 80

	highSystolicAbove  = 140
	highDiastolicAbove = 90
)

// Classify maps a systolic/diastolic pair to its category.
//
// The checks run in a fixed order because the chart ranges overlap:
//  1. systolic <= diastolic is rejected with an *InvalidReadingError
//  2. systolic < 90 or diastolic < 60 is Low
//  3. systolic in [90, 120] and diastolic in [60, 80] is Ideal
//  4. systolic > 140 or diastolic > 90 is High
//  5. anything else is PreHigh
//
// Values outside the accepted input ranges are not rejected here.
func Classify(systolic, diastolic int) (Category, error) {
	if systolic <= diastolic {
		return 0, &InvalidReadingError{Systolic: systolic, Diastolic: diastolic}
	}

	switch {
	case systolic < lowSystolicBelow || diastolic < lowDiastolicBelow:
		return Low, nil
	case systolic <= idealSystolicMax && diastolic <= idealDiastolicMax:
		// lower bounds already guaranteed by the Low case
		return Ideal, nil
	case systolic > highSystolicAbove || diastolic > highDiastolicAbove:
		return High, nil
	default:
		return PreHigh, nil
	}
}

var labels = map[Category]string{
	Low:     "Low Blood Pressure",
	Ideal:   "Ideal Blood Pressure",
	PreHigh: "Pre-High Blood Pressure",
	High:    "High Blood Pressure",
}

var explanations = map[Category]string{
	Low:     "Your blood pressure is low. If you often feel dizzy or faint, talk to your doctor.",
	Ideal:   "Your blood pressure is ideal. Keep up your healthy lifestyle.",
	PreHigh: "Your blood pressure is pre-high. Cutting down on salt and staying active can help bring it down.",
	High:    "Your blood pressure is high. Please consult your doctor about treatment.",
}

const (
	unknownLabel        = "Unknown"
	fallbackExplanation = "No information is available for this reading."
)

// Label returns the display name of the category.
func Label(c Category) string {
	if l, ok := labels[c]; ok {
		return l
	}
	return unknownLabel
}

// Explain returns a short sentence describing what the category means for the
// person who took the reading. It never returns an empty string.
func Explain(c Category) string {
	if e, ok := explanations[c]; ok {
		return e
	}
	return fallbackExplanation
}
