package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
	"github.com/phrazzld/bpcalc/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormHandler(t *testing.T) (*FormHandler, *recordingEmitter) {
	t.Helper()
	svc, emitter := newRealService(t)
	h, err := NewFormHandler(svc, nil)
	require.NoError(t, err)
	return h, emitter
}

func submitForm(t *testing.T, h *FormHandler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Submit(w, req)
	return w
}

func TestFormHandler_Index(t *testing.T) {
	t.Parallel()
	h, emitter := newFormHandler(t)

	w := httptest.NewRecorder()
	h.Index(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, `name="systolic"`)
	assert.Contains(t, body, `name="diastolic"`)
	assert.Contains(t, body, "Systolic (mmHg, 70-190)")
	for _, c := range bloodpressure.Categories() {
		assert.Contains(t, body, bloodpressure.Label(c))
	}
	assert.NotContains(t, body, `class="error"`)
	assert.Empty(t, emitter.events)
}

func TestFormHandler_Submit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		systolic       string
		diastolic      string
		expectedStatus int
		expectedText   []string
		expectedEvents int
	}{
		{
			name:           "ideal",
			systolic:       "115",
			diastolic:      "75",
			expectedStatus: http.StatusOK,
			expectedText:   []string{`data-category="ideal"`, "<h2>Ideal Blood Pressure</h2>"},
			expectedEvents: 1,
		},
		{
			name:           "high with surrounding spaces",
			systolic:       " 150 ",
			diastolic:      "95",
			expectedStatus: http.StatusOK,
			expectedText:   []string{`data-category="high"`, `value="150"`},
			expectedEvents: 1,
		},
		{
			name:           "non integer systolic",
			systolic:       "abc",
			diastolic:      "80",
			expectedStatus: http.StatusBadRequest,
			expectedText:   []string{"Systolic must be a whole number", `value="abc"`, `value="80"`},
		},
		{
			name:           "non integer diastolic",
			systolic:       "120",
			diastolic:      "80.5",
			expectedStatus: http.StatusBadRequest,
			expectedText:   []string{"Diastolic must be a whole number"},
		},
		{
			name:           "empty fields",
			expectedStatus: http.StatusBadRequest,
			expectedText:   []string{"Systolic must be a whole number"},
		},
		{
			name:           "relationship violated",
			systolic:       "80",
			diastolic:      "90",
			expectedStatus: http.StatusBadRequest,
			expectedText:   []string{"Systolic pressure must be greater than diastolic pressure"},
			expectedEvents: 1,
		},
		{
			name:           "out of range",
			systolic:       "120",
			diastolic:      "30",
			expectedStatus: http.StatusBadRequest,
			expectedText:   []string{"Diastolic must be between 40 and 100"},
			expectedEvents: 1,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h, emitter := newFormHandler(t)

			w := submitForm(t, h, url.Values{"systolic": {tc.systolic}, "diastolic": {tc.diastolic}})

			assert.Equal(t, tc.expectedStatus, w.Code)
			body := w.Body.String()
			for _, text := range tc.expectedText {
				assert.Contains(t, body, text)
			}
			require.Len(t, emitter.events, tc.expectedEvents)
			if tc.expectedEvents > 0 {
				assert.Equal(t, events.SourceForm, emitter.events[0].Source)
			}
			if tc.expectedStatus != http.StatusOK {
				assert.NotContains(t, body, "data-category=")
			}
		})
	}
}

func TestFormHandler_EscapesEchoedInput(t *testing.T) {
	t.Parallel()
	h, _ := newFormHandler(t)

	w := submitForm(t, h, url.Values{"systolic": {`"><script>alert(1)</script>`}, "diastolic": {"80"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
}
