package bloodpressure

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "low", Low.String())
	assert.Equal(t, "ideal", Ideal.String())
	assert.Equal(t, "pre_high", PreHigh.String())
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "unknown", Category(0).String())
}

func TestCategoriesOrder(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []Category{Low, Ideal, PreHigh, High}, Categories())
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, c := range Categories() {
		parsed, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCategory("elevated")
	assert.Error(t, err)
}

func TestCategoryJSON(t *testing.T) {
	t.Parallel()

	payload := struct {
		Category Category `json:"category"`
	}{Category: PreHigh}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"pre_high"}`, string(data))

	var decoded struct {
		Category Category `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"category":"high"}`), &decoded))
	assert.Equal(t, High, decoded.Category)

	assert.Error(t, json.Unmarshal([]byte(`{"category":"bogus"}`), &decoded))

	_, err = json.Marshal(struct {
		Category Category `json:"category"`
	}{})
	assert.Error(t, err, "zero category should not marshal")
}

func TestReadingCategory(t *testing.T) {
	t.Parallel()

	c, err := Reading{Systolic: 120, Diastolic: 80}.Category()
	require.NoError(t, err)
	assert.Equal(t, Ideal, c)

	_, err = Reading{Systolic: 80, Diastolic: 90}.Category()
	assert.ErrorIs(t, err, ErrInvalidRelationship)
}

func TestDefaultService(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	require.NotNil(t, svc)

	c, err := svc.Classify(Reading{Systolic: 141, Diastolic: 90})
	require.NoError(t, err)
	assert.Equal(t, High, c)
	assert.Equal(t, Explain(High), svc.Explain(c))
	assert.Equal(t, "High Blood Pressure", svc.Label(c))

	_, err = svc.Classify(Reading{Systolic: 100, Diastolic: 100})
	assert.ErrorIs(t, err, ErrInvalidRelationship)
}
