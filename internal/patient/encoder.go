package patient

// NumFeatures is the width of the row the classifier was trained on.
const NumFeatures = 13

// Columns is the training column order. Encode must produce values in
// exactly this order.
var Columns = [NumFeatures]string{
	"Age",
	"Gender",
	"Blood Pressure",
	"Cholesterol Level",
	"BMI",
	"Triglyceride Level",
	"Fasting Blood Sugar",
	"CRP Level",
	"Homocysteine Level",
	"Smoking",
	"Diabetes",
	"Family Heart Disease",
	"High Blood Pressure",
}

// Row is one encoded feature row.
type Row [NumFeatures]float64

// Slice returns a copy of the row as a slice.
func (r Row) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, r[:])
	return out
}

// ColumnNames returns Columns as a slice.
func ColumnNames() []string {
	out := make([]string, NumFeatures)
	copy(out, Columns[:])
	return out
}

// Encode validates the form and lays it out in training column order.
func Encode(f Form) (Row, error) {
	if err := f.Validate(); err != nil {
		return Row{}, err
	}

	return Row{
		f.Age,
		flag(f.Gender, Male),
		f.BloodPressure,
		f.Cholesterol,
		f.BMI,
		f.Triglyceride,
		f.FastingBloodSugar,
		f.CRPLevel,
		f.Homocysteine,
		flag(f.Smoking, Yes),
		flag(f.Diabetes, Yes),
		flag(f.FamilyHeartDisease, Yes),
		flag(f.HighBloodPressure, Yes),
	}, nil
}

// flag maps a validated choice to 1 when it equals positive, else 0.
func flag(value, positive string) float64 {
	if v, _ := matchOption([]string{positive}, value); v == positive {
		return 1
	}
	return 0
}
