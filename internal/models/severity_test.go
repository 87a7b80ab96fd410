package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	classifier := NewClassifier(DefaultMassCasualtyThreshold)

	testCases := []struct {
		name     string
		killed   int
		wounded  int
		expected SeverityCategory
	}{
		{name: "No casualties", killed: 0, wounded: 0, expected: SeverityNoCasualties},
		{name: "Injuries only", killed: 0, wounded: 3, expected: SeverityInjuriesOnly},
		{name: "Injuries only above threshold", killed: 0, wounded: 12, expected: SeverityInjuriesOnly},
		{name: "Single fatality", killed: 1, wounded: 0, expected: SeveritySingleFatality},
		{name: "Two killed one wounded", killed: 2, wounded: 1, expected: SeverityMultipleCasualties},
		{name: "One killed two wounded", killed: 1, wounded: 2, expected: SeverityMultipleCasualties},
		{name: "Threshold reached", killed: 1, wounded: 3, expected: SeverityMassCasualty},
		{name: "Many killed", killed: 21, wounded: 17, expected: SeverityMassCasualty},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifier.Classify(tc.killed, tc.wounded))
		})
	}
}

func TestClassifier_CustomThreshold(t *testing.T) {
	classifier := NewClassifier(10)

	assert.Equal(t, SeverityMultipleCasualties, classifier.Classify(2, 5))
	assert.Equal(t, SeverityMassCasualty, classifier.Classify(5, 5))
	assert.False(t, classifier.IsMassCasualty(9))

	assert.Equal(t, DefaultMassCasualtyThreshold, NewClassifier(0).MassCasualtyThreshold)
	assert.True(t, Classifier{}.IsMassCasualty(4))
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 0, SeverityNoCasualties.Rank())
	assert.Equal(t, 4, SeverityMassCasualty.Rank())
	assert.Less(t, SeverityInjuriesOnly.Rank(), SeveritySingleFatality.Rank())
	assert.Equal(t, -1, SeverityCategory("").Rank())
}

func TestParseSeverityCategory(t *testing.T) {
	for _, value := range []string{"Mass Casualty", "mass_casualty", " MASS-CASUALTY "} {
		category, err := ParseSeverityCategory(value)
		require.NoError(t, err, value)
		assert.Equal(t, SeverityMassCasualty, category)
	}

	_, err := ParseSeverityCategory("catastrophic")
	assert.Error(t, err)
}
