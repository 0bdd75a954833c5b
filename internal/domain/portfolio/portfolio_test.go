package portfolio

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/folio-sync/pkg/apperror"
)

func TestExperienceValidate(t *testing.T) {
	exp := Experience{Title: "Engineer", Company: "Acme", StartDate: "2020-01-01"}
	assert.NoError(t, exp.Validate())

	exp.Company = ""
	err := exp.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "required", verr.Fields["Company"])
}

func TestExperienceCurrentDropsEndDate(t *testing.T) {
	exp := Experience{
		Title:     "Engineer",
		Company:   "Acme",
		StartDate: "2020-01-01",
		EndDate:   "2021-06-30",
		Current:   true,
	}

	raw, err := json.Marshal(exp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "endDate")
	assert.Equal(t, true, decoded["current"])

	// Once the role has ended, the stored end date goes back on the wire.
	exp.Current = false
	raw, err = json.Marshal(exp)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "2021-06-30", decoded["endDate"])
}

func TestEducationCurrentDropsEndYear(t *testing.T) {
	edu := Education{School: "MIT", Degree: "BSc", StartYear: 2019, EndYear: 2023, Current: true}

	raw, err := json.Marshal(edu)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "endYear")

	assert.Equal(t, 0, edu.Normalized().EndYear)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("expert")
	require.NoError(t, err)
	assert.Equal(t, LevelExpert, lvl)

	_, err = ParseLevel("grandmaster")
	assert.Error(t, err)
}

func TestSkillValidate(t *testing.T) {
	assert.NoError(t, Skill{Name: "Go", Level: LevelAdvanced}.Validate())
	assert.Error(t, Skill{Name: "Go", Level: "WIZARD"}.Validate())
	assert.Error(t, Skill{Level: LevelBeginner}.Validate())
}

func TestReferenceValidate(t *testing.T) {
	ref := Reference{
		Name:         "Jane Doe",
		Position:     "CTO",
		Company:      "Acme",
		Email:        "jane@acme.test",
		Relationship: "Former manager",
	}
	assert.NoError(t, ref.Validate())

	ref.Email = "not-an-email"
	err := ref.Validate()
	require.Error(t, err)
	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "must be a valid email", verr.Fields["Email"])
}

func TestPatchOmitsNilFields(t *testing.T) {
	headline := "Staff Engineer"
	empty := ""
	p := Patch{Headline: &headline, Summary: &empty}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Staff Engineer", decoded["headline"])
	assert.Contains(t, decoded, "summary") // explicit clear
	assert.NotContains(t, decoded, "location")
	assert.NotContains(t, decoded, "website")
}
