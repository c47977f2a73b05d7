package patient

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldKind string

const (
	KindInteger FieldKind = "integer"
	KindDecimal FieldKind = "decimal"
	KindChoice  FieldKind = "choice"
)

// Field describes one input of the patient form and the bounds enforced on it.
type Field struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Kind    FieldKind `json:"kind"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Step    float64   `json:"step,omitempty"`
	Default any       `json:"default"`
	Options []string  `json:"options,omitempty"`
}

const (
	Male   = "Male"
	Female = "Female"
	Yes    = "Yes"
	No     = "No"
)

var (
	genderOptions = []string{Male, Female}
	yesNoOptions  = []string{No, Yes}

	fields = []Field{
		{Key: "age", Label: "Age (years)", Kind: KindInteger, Min: 10, Max: 100, Step: 1, Default: 45},
		{Key: "gender", Label: "Gender", Kind: KindChoice, Default: Male, Options: genderOptions},
		{Key: "blood_pressure", Label: "Blood Pressure (mm Hg)", Kind: KindInteger, Min: 80, Max: 200, Step: 1, Default: 120},
		{Key: "cholesterol", Label: "Cholesterol (mg/dl)", Kind: KindInteger, Min: 100, Max: 600, Step: 1, Default: 200},
		{Key: "bmi", Label: "BMI (Body Mass Index)", Kind: KindDecimal, Min: 10, Max: 60, Step: 0.1, Default: 25.0},
		{Key: "triglyceride", Label: "Triglyceride Level", Kind: KindInteger, Min: 10, Max: 500, Step: 1, Default: 150},
		{Key: "fasting_blood_sugar", Label: "Fasting Blood Sugar (mg/dl)", Kind: KindInteger, Min: 50, Max: 300, Step: 1, Default: 100},
		{Key: "crp_level", Label: "C-Reactive Protein (CRP)", Kind: KindDecimal, Min: 0, Max: 20, Step: 0.1, Default: 3.0},
		{Key: "homocysteine", Label: "Homocysteine Level", Kind: KindDecimal, Min: 0, Max: 30, Step: 0.1, Default: 10.0},
		{Key: "smoking", Label: "Smoking Habit", Kind: KindChoice, Default: No, Options: yesNoOptions},
		{Key: "diabetes", Label: "Diabetes", Kind: KindChoice, Default: No, Options: yesNoOptions},
		{Key: "family_heart_disease", Label: "Family History of Heart Disease", Kind: KindChoice, Default: No, Options: yesNoOptions},
		{Key: "high_blood_pressure", Label: "High Blood Pressure", Kind: KindChoice, Default: No, Options: yesNoOptions},
	}
)

// Fields returns the form inputs in display order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// LookupField finds a field by key or by its label, ignoring case.
func LookupField(name string) (Field, bool) {
	name = strings.TrimSpace(name)
	for _, f := range fields {
		if strings.EqualFold(f.Key, name) || strings.EqualFold(f.Label, name) {
			return f, true
		}
	}
	return Field{}, false
}

// Form holds one patient's answers as submitted. The validate tags mirror
// the bounds and options in the field table.
type Form struct {
	Age                float64 `json:"age" form:"age" validate:"finite,gte=10,lte=100,whole"`
	Gender             string  `json:"gender" form:"gender" validate:"oneof=Male Female"`
	BloodPressure      float64 `json:"blood_pressure" form:"blood_pressure" validate:"finite,gte=80,lte=200,whole"`
	Cholesterol        float64 `json:"cholesterol" form:"cholesterol" validate:"finite,gte=100,lte=600,whole"`
	BMI                float64 `json:"bmi" form:"bmi" validate:"finite,gte=10,lte=60"`
	Triglyceride       float64 `json:"triglyceride" form:"triglyceride" validate:"finite,gte=10,lte=500,whole"`
	FastingBloodSugar  float64 `json:"fasting_blood_sugar" form:"fasting_blood_sugar" validate:"finite,gte=50,lte=300,whole"`
	CRPLevel           float64 `json:"crp_level" form:"crp_level" validate:"finite,gte=0,lte=20"`
	Homocysteine       float64 `json:"homocysteine" form:"homocysteine" validate:"finite,gte=0,lte=30"`
	Smoking            string  `json:"smoking" form:"smoking" validate:"oneof=No Yes"`
	Diabetes           string  `json:"diabetes" form:"diabetes" validate:"oneof=No Yes"`
	FamilyHeartDisease string  `json:"family_heart_disease" form:"family_heart_disease" validate:"oneof=No Yes"`
	HighBloodPressure  string  `json:"high_blood_pressure" form:"high_blood_pressure" validate:"oneof=No Yes"`
}

// DefaultForm returns the form as it looks before the user touches anything.
func DefaultForm() Form {
	return Form{
		Age:                45,
		Gender:             Male,
		BloodPressure:      120,
		Cholesterol:        200,
		BMI:                25.0,
		Triglyceride:       150,
		FastingBloodSugar:  100,
		CRPLevel:           3.0,
		Homocysteine:       10.0,
		Smoking:            No,
		Diabetes:           No,
		FamilyHeartDisease: No,
		HighBloodPressure:  No,
	}
}

// Set assigns a raw string value to the field identified by key.
func (f *Form) Set(key, raw string) error {
	field, ok := LookupField(key)
	if !ok {
		return fmt.Errorf("unknown field %q", key)
	}
	if field.Kind == KindChoice {
		*f.choice(field.Key) = strings.TrimSpace(raw)
		return nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("%s: not a number: %q", field.Label, raw)
	}
	*f.number(field.Key) = v
	return nil
}

// Value returns the current value of the field identified by key as text.
func (f Form) Value(key string) string {
	if p := f.choice(key); p != nil {
		return *p
	}
	if p := f.number(key); p != nil {
		return strconv.FormatFloat(*p, 'f', -1, 64)
	}
	return ""
}

func (f *Form) number(key string) *float64 {
	switch key {
	case "age":
		return &f.Age
	case "blood_pressure":
		return &f.BloodPressure
	case "cholesterol":
		return &f.Cholesterol
	case "bmi":
		return &f.BMI
	case "triglyceride":
		return &f.Triglyceride
	case "fasting_blood_sugar":
		return &f.FastingBloodSugar
	case "crp_level":
		return &f.CRPLevel
	case "homocysteine":
		return &f.Homocysteine
	}
	return nil
}

func (f *Form) choice(key string) *string {
	switch key {
	case "gender":
		return &f.Gender
	case "smoking":
		return &f.Smoking
	case "diabetes":
		return &f.Diabetes
	case "family_heart_disease":
		return &f.FamilyHeartDisease
	case "high_blood_pressure":
		return &f.HighBloodPressure
	}
	return nil
}

// Normalize rewrites every choice to its canonical option ("yes" becomes
// "Yes"). Unknown choices are only trimmed and fail Validate.
func (f *Form) Normalize() {
	for _, field := range fields {
		if field.Kind != KindChoice {
			continue
		}
		p := f.choice(field.Key)
		if o, ok := matchOption(field.Options, *p); ok {
			*p = o
		} else {
			*p = strings.TrimSpace(*p)
		}
	}
}

// Validate checks every field against its declared bounds and options.
// Choices are compared ignoring case. It does not check fields against each
// other.
func (f Form) Validate() error {
	f.Normalize()

	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range errs {
		field, ok := LookupField(fe.Field())
		if !ok {
			return fmt.Errorf("validate %s: %w", fe.Field(), err)
		}
		verr.add(field, message(field, fe.Tag()))
	}
	return verr
}

func message(field Field, tag string) string {
	switch tag {
	case "finite":
		return "must be a finite number"
	case "whole":
		return "must be a whole number"
	case "oneof":
		return fmt.Sprintf("must be one of %s", strings.Join(field.Options, ", "))
	default:
		return fmt.Sprintf("must be between %g and %g", field.Min, field.Max)
	}
}

func matchOption(options []string, v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return o, true
		}
	}
	return "", false
}

// FieldError reports one rejected input.
type FieldError struct {
	Field   string `json:"field"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// ValidationError collects every rejected input of a form.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) add(field Field, msg string) {
	e.Fields = append(e.Fields, FieldError{Field: field.Key, Label: field.Label, Message: msg})
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", fe.Label, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
