package survey

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueJSONUnion(t *testing.T) {
	var v Value
	err := json.Unmarshal([]byte(`"Student"`), &v)
	assert.NoError(t, err)
	assert.False(t, v.IsMultiple())
	assert.Equal(t, "Student", v.Single())

	err = json.Unmarshal([]byte(`["Credit card debt","Student loans"]`), &v)
	assert.NoError(t, err)
	assert.True(t, v.IsMultiple())
	assert.Equal(t, []string{"Credit card debt", "Student loans"}, v.Choices())

	err = json.Unmarshal([]byte(`{"bad":"shape"}`), &v)
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = json.Unmarshal([]byte(`42`), &v)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestEncodeDecodeSymmetry(t *testing.T) {
	cases := []Value{
		Single("I break even most months"),
		Single(""),
		Multiple([]string{"Credit card debt", "Student loans"}),
		Multiple([]string{"No debt"}),
	}
	for _, original := range cases {
		encoded, err := EncodeValue(original)
		assert.NoError(t, err)

		decoded, err := DecodeValue(encoded)
		assert.NoError(t, err)
		assert.Equal(t, original.IsMultiple(), decoded.IsMultiple())
		assert.Equal(t, original.Single(), decoded.Single())
		assert.Equal(t, original.Choices(), decoded.Choices())
	}
}

func TestMultipleRoundTripPreservesOrder(t *testing.T) {
	// caller-supplied order survives storage: no dedup, no reorder
	original := Multiple([]string{"Student loans", "Credit card debt", "Car loan"})
	encoded, err := EncodeValue(original)
	assert.NoError(t, err)
	assert.Equal(t, `["Student loans","Credit card debt","Car loan"]`, encoded)

	decoded, err := DecodeValue(encoded)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Student loans", "Credit card debt", "Car loan"}, decoded.Choices())
}

func TestToggle(t *testing.T) {
	v := Multiple(nil)
	v = v.Toggle("Student loans")
	assert.Equal(t, []string{"Student loans"}, v.Choices())

	v = v.Toggle("Credit card debt")
	assert.Equal(t, []string{"Student loans", "Credit card debt"}, v.Choices())

	v = v.Toggle("Student loans")
	assert.Equal(t, []string{"Credit card debt"}, v.Choices())
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Single("").IsEmpty())
	assert.True(t, Multiple(nil).IsEmpty())
	assert.True(t, Multiple([]string{}).IsEmpty())
	assert.False(t, Single("Retired").IsEmpty())
	assert.False(t, Multiple([]string{"No debt"}).IsEmpty())
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Retired", Single("Retired").Display())
	assert.Equal(t, `["Car loan","Medical debt"]`, Multiple([]string{"Car loan", "Medical debt"}).Display())
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Debt Status", LabelFor("debt"))
	assert.Equal(t, "Employment Status", LabelFor("employment"))
	// unknown IDs fall back to the raw identifier
	assert.Equal(t, "mystery_question", LabelFor("mystery_question"))
}

func TestEmptyMultipleMarshalsToEmptyArray(t *testing.T) {
	data, err := json.Marshal(Multiple(nil))
	assert.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}
