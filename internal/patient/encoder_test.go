package patient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDefaults(t *testing.T) {
	row, err := Encode(DefaultForm())
	require.NoError(t, err)

	assert.Equal(t, Row{45, 1, 120, 200, 25.0, 150, 100, 3.0, 10.0, 0, 0, 0, 0}, row)
}

func TestEncodeCategoricals(t *testing.T) {
	f := DefaultForm()
	f.Gender = Female
	f.Smoking = Yes
	f.Diabetes = "yes"
	f.FamilyHeartDisease = " YES "
	f.HighBloodPressure = No

	row, err := Encode(f)
	require.NoError(t, err)

	assert.Equal(t, 0.0, row[1])
	assert.Equal(t, 1.0, row[9])
	assert.Equal(t, 1.0, row[10])
	assert.Equal(t, 1.0, row[11])
	assert.Equal(t, 0.0, row[12])
}

func TestEncodeCategoricalsAreBinary(t *testing.T) {
	genders := []string{Male, Female}
	answers := []string{Yes, No}

	for _, g := range genders {
		for _, s := range answers {
			for _, d := range answers {
				for _, fh := range answers {
					for _, hb := range answers {
						f := DefaultForm()
						f.Gender, f.Smoking, f.Diabetes, f.FamilyHeartDisease, f.HighBloodPressure = g, s, d, fh, hb

						row, err := Encode(f)
						require.NoError(t, err)
						require.Len(t, row.Slice(), NumFeatures)
						for _, idx := range []int{1, 9, 10, 11, 12} {
							assert.Contains(t, []float64{0, 1}, row[idx], "column %s", Columns[idx])
						}
					}
				}
			}
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	f := DefaultForm()
	f.BMI = 31.7
	f.CRPLevel = 12.4

	first, err := Encode(f)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Encode(f)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEncodeRejectsOutOfBounds(t *testing.T) {
	f := DefaultForm()
	f.BloodPressure = 250
	f.Age = 9
	f.Gender = "Other"

	_, err := Encode(f)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	keys := []string{}
	for _, fe := range verr.Fields {
		keys = append(keys, fe.Field)
	}
	assert.ElementsMatch(t, []string{"age", "gender", "blood_pressure"}, keys)
	assert.Contains(t, err.Error(), "Blood Pressure")
}

func TestValidateBoundsAreInclusive(t *testing.T) {
	f := DefaultForm()
	f.Age = 10
	f.CRPLevel = 0
	f.Homocysteine = 30
	f.BMI = 60
	assert.NoError(t, f.Validate())
}

func TestValidateRejectsFractionalInteger(t *testing.T) {
	f := DefaultForm()
	f.Cholesterol = 200.5

	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whole number")
}

func TestRowSliceIsCopy(t *testing.T) {
	row, err := Encode(DefaultForm())
	require.NoError(t, err)

	s := row.Slice()
	s[0] = 99
	assert.Equal(t, 45.0, row[0])
}

func TestColumnOrder(t *testing.T) {
	assert.Equal(t, []string{
		"Age", "Gender", "Blood Pressure", "Cholesterol Level", "BMI", "Triglyceride Level",
		"Fasting Blood Sugar", "CRP Level", "Homocysteine Level",
		"Smoking", "Diabetes", "Family Heart Disease", "High Blood Pressure",
	}, ColumnNames())
}
