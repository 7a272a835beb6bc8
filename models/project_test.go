package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveScore(t *testing.T) {
	p := Project{TotalScore: 64.0}
	assert.Equal(t, 64.0, p.ActiveScore())

	final := 72.5
	p.FinalScore = &final
	assert.Equal(t, 72.5, p.ActiveScore())
}

func TestHasOverrides(t *testing.T) {
	p := Project{}
	assert.False(t, p.HasOverrides())

	// A 1.0 override is a legitimate low score, not an absent one.
	low := 1.0
	p.OverrideStake = &low
	assert.True(t, p.HasOverrides())
}

func TestAnswerListSplitting(t *testing.T) {
	p := Project{
		RepHarmCategories: "Company reputation, Customer harm",
		ResExternalDeps:   "Third-party vendor",
		DataTypes:         "",
	}

	assert.Equal(t, []string{"Company reputation", "Customer harm"}, p.HarmCategoryList())
	assert.Equal(t, []string{"Third-party vendor"}, p.ExternalDepList())
	assert.Nil(t, p.DataTypeList())

	p.DataTypes = " Financial transaction data ,, "
	assert.Equal(t, []string{"Financial transaction data"}, p.DataTypeList())
}
