package api

import (
	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
	"github.com/phrazzld/bpcalc/internal/service"
)

// ClassifyRequest defines the payload for POST /api/readings/classify.
// Pointers distinguish a missing field from an explicit zero.
type ClassifyRequest struct {
	Systolic  *int `json:"systolic"  validate:"required"`
	Diastolic *int `json:"diastolic" validate:"required"`
}

// Reading converts the request into a domain reading. It must only be called
// after the request has been validated.
func (r ClassifyRequest) Reading() bloodpressure.Reading {
	return bloodpressure.Reading{Systolic: *r.Systolic, Diastolic: *r.Diastolic}
}

// ReadingResponse is the classification of a single reading.
type ReadingResponse struct {
	Systolic    int                    `json:"systolic"`
	Diastolic   int                    `json:"diastolic"`
	Category    bloodpressure.Category `json:"category"`
	Label       string                 `json:"label"`
	Explanation string                 `json:"explanation"`
}

// CategoryResponse is one row of the category chart.
type CategoryResponse struct {
	Category    bloodpressure.Category `json:"category"`
	Label       string                 `json:"label"`
	Explanation string                 `json:"explanation"`
}

func resultToResponse(result *service.Result) ReadingResponse {
	return ReadingResponse{
		Systolic:    result.Reading.Systolic,
		Diastolic:   result.Reading.Diastolic,
		Category:    result.Category,
		Label:       result.Label,
		Explanation: result.Explanation,
	}
}

func chartToResponse(chart []service.CategoryInfo) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(chart))
	for _, info := range chart {
		out = append(out, CategoryResponse{
			Category:    info.Category,
			Label:       info.Label,
			Explanation: info.Explanation,
		})
	}
	return out
}
