package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"CardioCheck/internal/modules/prediction/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFrom(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

const validBody = `{
	"age": 45, "height": 170, "weight": 80, "gender": 1,
	"ap_hi": 150, "ap_lo": 95, "cholesterol": 3, "gluc": 1,
	"smoke": true, "alco": false, "active": false
}`

func TestValidate_Accepts(t *testing.T) {
	m, err := Validate(rawFrom(t, validBody))
	require.NoError(t, err)

	assert.Equal(t, entity.PatientMetrics{
		Age:              45,
		HeightCm:         170,
		WeightKg:         80,
		Gender:           entity.GenderMale,
		SystolicBP:       150,
		DiastolicBP:      95,
		Cholesterol:      entity.BandHigh,
		Glucose:          entity.BandNormal,
		Smoker:           true,
		DrinksAlcohol:    false,
		PhysicallyActive: false,
	}, m)
}

func TestValidate_LooseTypes(t *testing.T) {
	body := `{
		"age": "45", "height": "170", "weight": "80.5", "gender": "female",
		"ap_hi": 150.0, "ap_lo": "95", "cholesterol": "above_normal", "gluc": "2",
		"smoke": "on", "alco": 0, "active": "true"
	}`
	m, err := Validate(rawFrom(t, body))
	require.NoError(t, err)

	assert.Equal(t, 45, m.Age)
	assert.Equal(t, 80.5, m.WeightKg)
	assert.Equal(t, entity.GenderFemale, m.Gender)
	assert.Equal(t, 150, m.SystolicBP)
	assert.Equal(t, entity.BandAboveNormal, m.Cholesterol)
	assert.Equal(t, entity.BandAboveNormal, m.Glucose)
	assert.True(t, m.Smoker)
	assert.False(t, m.DrinksAlcohol)
	assert.True(t, m.PhysicallyActive)
}

func TestValidate_SystolicNotAboveDiastolic(t *testing.T) {
	for _, pair := range [][2]int{{95, 95}, {90, 95}, {60, 150}} {
		raw := rawFrom(t, validBody)
		raw["ap_hi"] = json.RawMessage(jsonInt(pair[0]))
		raw["ap_lo"] = json.RawMessage(jsonInt(pair[1]))

		_, err := Validate(raw)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "ap_hi=%d ap_lo=%d", pair[0], pair[1])
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "ap_hi", verr.Fields[0].Field)
		assert.Equal(t, "Systolic BP must be greater than Diastolic BP", verr.Fields[0].Message)
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	body := `{
		"age": 12, "height": 99, "weight": 301, "gender": 3,
		"ap_hi": 251, "ap_lo": 39, "cholesterol": 0, "gluc": "sweet",
		"smoke": "maybe", "alco": false
	}`
	_, err := Validate(rawFrom(t, body))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{
		"age", "height", "weight", "gender", "ap_hi", "ap_lo",
		"cholesterol", "gluc", "smoke", "active",
	}, fields)

	assert.Equal(t, "Age must be at least 18", verr.Message("age"))
	assert.Equal(t, "Height must be at least 100 cm", verr.Message("height"))
	assert.Equal(t, "Weight must be at most 300 kg", verr.Message("weight"))
	assert.Equal(t, "Please select a gender", verr.Message("gender"))
	assert.Equal(t, "Systolic BP must be at most 250", verr.Message("ap_hi"))
	assert.Equal(t, "Diastolic BP must be at least 40", verr.Message("ap_lo"))
	assert.Equal(t, "Selection required", verr.Message("cholesterol"))
	assert.Equal(t, "Selection required", verr.Message("gluc"))
	assert.Equal(t, "Smoke must be true or false", verr.Message("smoke"))
	assert.Equal(t, "Active is required", verr.Message("active"))
	assert.Empty(t, verr.Message("alco"))
}

func TestValidate_MissingAndMistyped(t *testing.T) {
	raw := rawFrom(t, validBody)
	raw["age"] = json.RawMessage(`null`)
	raw["height"] = json.RawMessage(`170.5`)
	raw["weight"] = json.RawMessage(`"heavy"`)
	delete(raw, "ap_lo")

	_, err := Validate(raw)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	assert.Equal(t, "Age is required", verr.Message("age"))
	assert.Equal(t, "Height must be a whole number", verr.Message("height"))
	assert.Equal(t, "Weight must be a number", verr.Message("weight"))
	assert.Equal(t, "Diastolic BP is required", verr.Message("ap_lo"))
	// a missing diastolic value must not turn into a bogus cross-field error
	assert.Empty(t, verr.Message("ap_hi"))
}

func TestValidate_RangeBoundsInclusive(t *testing.T) {
	raw := rawFrom(t, validBody)
	raw["age"] = json.RawMessage(`120`)
	raw["height"] = json.RawMessage(`100`)
	raw["weight"] = json.RawMessage(`30`)
	raw["ap_hi"] = json.RawMessage(`250`)
	raw["ap_lo"] = json.RawMessage(`150`)

	_, err := Validate(raw)
	assert.NoError(t, err)
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
