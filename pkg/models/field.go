package models

// FieldKind is the widget used to render a form field.
type FieldKind string

const (
	FieldSelect      FieldKind = "select"
	FieldMultiSelect FieldKind = "multiselect"
	FieldText        FieldKind = "text"
	FieldTextArea    FieldKind = "textarea"
	FieldNumber      FieldKind = "number"
	FieldSlider      FieldKind = "slider"
	FieldCheckbox    FieldKind = "checkbox"
	FieldDate        FieldKind = "date"
	FieldFile        FieldKind = "file"
	FieldHidden      FieldKind = "hidden"
)

// FieldSpec describes one visible form field together with its current value.
type FieldSpec struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Group       string    `json:"group,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Value       string    `json:"value,omitempty"`
	Values      []string  `json:"values,omitempty"`
	Checked     bool      `json:"checked,omitempty"`
	Min         float64   `json:"min,omitempty"`
	Max         float64   `json:"max,omitempty"`
	Step        float64   `json:"step,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty"`
	Accept      string    `json:"accept,omitempty"`
}

// Selected reports whether option is part of the field's current value.
func (f FieldSpec) Selected(option string) bool {
	if f.Value == option {
		return true
	}

	for _, value := range f.Values {
		if value == option {
			return true
		}
	}

	return false
}
