package schedule

import (
	"errors"
	"fmt"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
)

var ErrUnknownTemplate = fmt.Errorf("%w: unknown template", domain.ErrValidation)

// TemplateID names one of the fixed shift templates.
type TemplateID string

const (
	TemplateFullWeek    TemplateID = "full-week"
	TemplateWeekdays    TemplateID = "weekdays"
	TemplateWeekends    TemplateID = "weekends"
	TemplateAlternating TemplateID = "alternating"
	TemplateMidWeek     TemplateID = "mid-week"
)

// Template is a named, fixed day pattern used to bulk-assign one shift type.
type Template struct {
	ID          TemplateID       `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Days        []domain.Weekday `json:"days"`
}

// PatternSlot is one (day, shift) pair produced by a template.
type PatternSlot struct {
	Day   domain.Weekday   `json:"day"`
	Shift domain.ShiftType `json:"shift"`
}

var catalog = []Template{
	{
		ID:          TemplateFullWeek,
		Name:        "Full Week",
		Description: "Same shift, Monday through Sunday",
		Days:        domain.Weekdays,
	},
	{
		ID:          TemplateWeekdays,
		Name:        "Weekdays Only",
		Description: "Monday through Friday",
		Days:        []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday},
	},
	{
		ID:          TemplateWeekends,
		Name:        "Weekends Only",
		Description: "Saturday and Sunday",
		Days:        []domain.Weekday{domain.Saturday, domain.Sunday},
	},
	{
		ID:          TemplateAlternating,
		Name:        "Alternating Days",
		Description: "Monday, Wednesday, Friday, Sunday",
		Days:        []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday, domain.Sunday},
	},
	{
		ID:          TemplateMidWeek,
		Name:        "Mid Week",
		Description: "Tuesday, Wednesday, Thursday",
		Days:        []domain.Weekday{domain.Tuesday, domain.Wednesday, domain.Thursday},
	},
}

// Templates returns the template catalog in display order.
func Templates() []Template {
	out := make([]Template, len(catalog))
	for i, t := range catalog {
		t.Days = append([]domain.Weekday(nil), t.Days...)
		out[i] = t
	}
	return out
}

// LookupTemplate finds a template by id.
func LookupTemplate(id TemplateID) (Template, error) {
	for _, t := range catalog {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, ErrUnknownTemplate
}

// Pattern maps every day of the template to shift.
func (t Template) Pattern(shift domain.ShiftType) []PatternSlot {
	out := make([]PatternSlot, 0, len(t.Days))
	for _, d := range t.Days {
		out = append(out, PatternSlot{Day: d, Shift: shift})
	}
	return out
}

// Expand is the pure template expander: (templateID, shiftType) -> [(day, shiftType)].
// It backs both the preview and the apply call.
func Expand(id TemplateID, shift domain.ShiftType) ([]PatternSlot, error) {
	if !shift.Valid() {
		return nil, domain.ErrInvalidShift
	}
	t, err := LookupTemplate(id)
	if err != nil {
		return nil, err
	}
	return t.Pattern(shift), nil
}

// IsUnknownTemplate reports whether err came from an unknown template id.
func IsUnknownTemplate(err error) bool {
	return errors.Is(err, ErrUnknownTemplate)
}
