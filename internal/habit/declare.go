package habit

import (
	"fmt"

	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/validate"
)

// NextDeclarationID allocates the next sequential declaration id.
func NextDeclarationID(s *model.Store) string {
	n := s.Meta.NextDeclarationNumber
	s.Meta.NextDeclarationNumber = n + 1
	return fmt.Sprintf("d%06d", n)
}

// Declare appends a stated-intent record for (habit, date). Declarations
// are append-only; declaring the same date again simply adds another
// record.
func Declare(s *model.Store, habitID, date, ts, text string) (model.Declaration, error) {
	if err := dates.Validate(date, "date"); err != nil {
		return model.Declaration{}, err
	}
	tts, err := validate.Timestamp(ts, "ts")
	if err != nil {
		return model.Declaration{}, err
	}
	t, err := validate.Reason(text, "Declaration text")
	if err != nil {
		return model.Declaration{}, err
	}

	decl := model.Declaration{
		ID:      NextDeclarationID(s),
		HabitID: habitID,
		Date:    date,
		TS:      tts,
		Text:    t,
	}
	s.Declarations = append(s.Declarations, decl)
	return decl, nil
}

// HasDeclaration reports whether at least one declaration exists for
// (habit, date).
func HasDeclaration(s *model.Store, habitID, date string) bool {
	for _, d := range s.Declarations {
		if d.HabitID == habitID && d.Date == date {
			return true
		}
	}
	return false
}
