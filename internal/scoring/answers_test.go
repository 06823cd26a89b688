package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnswers(t *testing.T) {
	a, err := ParseAnswers(map[string]string{
		"name":            "Grace",
		"workLifeBalance": "Good",
		"stress":          "",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace", a.Name)
	assert.Equal(t, "Good", a.Get(WorkLifeBalance))
	assert.Equal(t, "", a.Get(Stress))
}

func TestParseAnswersRejectsUnknownKeys(t *testing.T) {
	_, err := ParseAnswers(map[string]string{"name": "Grace", "salary": "high", "bonus": "none"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bonus, salary")
}

func TestFieldLists(t *testing.T) {
	assert.Len(t, AllFields, 22)
	assert.Len(t, DemographicFields, 7)
	for _, f := range ScoredFields {
		_, ok := VocabularyOf(f)
		assert.True(t, ok, "%s has no vocabulary", f)
	}
	for _, f := range DemographicFields {
		_, ok := VocabularyOf(f)
		assert.False(t, ok, "%s should not be scored", f)
	}
}

func TestFieldTitle(t *testing.T) {
	assert.Equal(t, "Work Life Balance", WorkLifeBalance.Title())
	assert.Equal(t, "Name", Name.Title())
}

func TestMapCoversEveryField(t *testing.T) {
	m := topAnswers().Map()
	assert.Len(t, m, 22)
	assert.Equal(t, "Very good", m[WorkLifeBalance])
}
