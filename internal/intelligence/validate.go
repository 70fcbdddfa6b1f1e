package intelligence

import (
	"github.com/alexanderramin/donna/internal/domain"
)

// Validate checks that d carries the fields its action requires, filling the
// CREATE duration and UNKNOWN clarification defaults. Missing fields are
// reported as domain.ErrInvalidInput.
func Validate(d *domain.EventDescriptor) error {
	switch d.Action {
	case domain.ActionCreate:
		if d.Title == "" {
			return domain.InvalidInput("I need a title for the event you want to create.")
		}
		if !d.HasWhen() {
			return domain.InvalidInput("When should I schedule '%s'? Please include a date, day, or time.", d.Title)
		}
		if d.Duration <= 0 {
			d.Duration = defaultDuration
		}
	case domain.ActionEdit, domain.ActionDelete:
		verb := "edit"
		if d.Action == domain.ActionDelete {
			verb = "delete"
		}
		if d.OriginalTitle == "" {
			return domain.InvalidInput("Which event do you want to %s? Please include its title.", verb)
		}
		if d.Date == "" && d.Day == "" && d.Time == "" {
			return domain.InvalidInput("I need more information to identify the event you want to %s. Please include date, day, or time.", verb)
		}
	case domain.ActionView:
		if d.Date == "" && d.Day == "" {
			return domain.InvalidInput("Which day would you like to see? Please include a date or day.")
		}
	case domain.ActionUnknown:
		if d.Clarification == "" {
			d.Clarification = ClarifyUnclear
		}
	default:
		return domain.InvalidInput("Unsupported action: %s", d.Action)
	}
	if d.Day != "" && !d.Day.Valid() {
		return domain.InvalidInput("Invalid day: %s", d.Day)
	}
	return nil
}
