package bloodpressure

// Service exposes the classifier behind an interface so request handlers can
// be tested with a stub.
type Service interface {
	// Classify returns the category of the reading or an error if the reading
	// cannot be classified.
	Classify(r Reading) (Category, error)

	// Explain returns the explanation sentence for a category.
	Explain(c Category) string

	// Label returns the display name for a category.
	Label(c Category) string
}

// defaultService delegates to the package-level functions.
type defaultService struct{}

// NewDefaultService returns a Service backed by the reference chart.
func NewDefaultService() Service {
	return defaultService{}
}

func (defaultService) Classify(r Reading) (Category, error) {
	return Classify(r.Systolic, r.Diastolic)
}

func (defaultService) Explain(c Category) string {
	return Explain(c)
}

func (defaultService) Label(c Category) string {
	return Label(c)
}
