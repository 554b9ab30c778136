package model

// DefaultTemplate is the slot layout used before the user saves their own.
func DefaultTemplate() DaySet {
	return DaySet{slots: []Slot{
		{ID: 1, Label: "5:30am-8am", TargetSeconds: 9000},
		{ID: 2, Label: "9am-1pm", TargetSeconds: 14400},
		{ID: 3, Label: "2pm-4pm", TargetSeconds: 7200},
		{ID: 4, Label: "4pm-8pm", TargetSeconds: 14400},
		{ID: 5, Label: "8pm-9pm", TargetSeconds: 3600},
	}}
}
