package bloodpressure

// Accepted input ranges in mmHg, inclusive.
const (
	SystolicMin  = 70
	SystolicMax  = 190
	DiastolicMin = 40
	DiastolicMax = 100
)

// Reading is a single blood pressure measurement in mmHg.
//
// A Reading may be constructed with any values; the validate tags describe the
// accepted input ranges and Classify enforces systolic > diastolic.
type Reading struct {
	Systolic  int `json:"systolic"  validate:"min=70,max=190"`
	Diastolic int `json:"diastolic" validate:"min=40,max=100"`
}

// Category classifies the reading. See Classify.
func (r Reading) Category() (Category, error) {
	return Classify(r.Systolic, r.Diastolic)
}
