package output

import (
	"github.com/manav03panchal/habitual/internal/model"
)

// Response envelopes for mutation commands in JSON mode. Read-only views
// marshal their report structs directly.

// HabitOutput represents a habit in JSON output.
type HabitOutput struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Schedule           string `json:"schedule"`
	Period             string `json:"period"`
	Target             int    `json:"target"`
	Notes              string `json:"notes,omitempty"`
	NeedsDeclaration   bool   `json:"needs_declaration"`
	ExcuseQuotaPerWeek int    `json:"excuse_quota_per_week"`
	CreatedDate        string `json:"created_date"`
	Archived           bool   `json:"archived"`
	ArchivedDate       string `json:"archived_date,omitempty"`
}

// NewHabitOutput creates a HabitOutput from a Habit.
func NewHabitOutput(h *model.Habit) *HabitOutput {
	return &HabitOutput{
		ID:                 h.ID,
		Name:               h.Name,
		Schedule:           h.Schedule.String(),
		Period:             string(h.Target.Period),
		Target:             h.Target.Quantity,
		Notes:              h.Notes,
		NeedsDeclaration:   h.NeedsDeclaration,
		ExcuseQuotaPerWeek: h.ExcuseQuota(),
		CreatedDate:        h.CreatedDate,
		Archived:           h.Archived,
		ArchivedDate:       h.ArchivedDate,
	}
}

// HabitResponse wraps a single-habit mutation result.
type HabitResponse struct {
	Status string       `json:"status"`
	Habit  *HabitOutput `json:"habit"`
}

// HabitsResponse represents the habit list output in JSON.
type HabitsResponse struct {
	Habits []*HabitOutput `json:"habits"`
	Count  int            `json:"count"`
}

// NewHabitsResponse creates a HabitsResponse from habits.
func NewHabitsResponse(habits []model.Habit) *HabitsResponse {
	outputs := make([]*HabitOutput, len(habits))
	for i := range habits {
		outputs[i] = NewHabitOutput(&habits[i])
	}
	return &HabitsResponse{Habits: outputs, Count: len(outputs)}
}

// CheckinResponse represents a check-in mutation in JSON.
type CheckinResponse struct {
	Status   string `json:"status"`
	HabitID  string `json:"habit_id"`
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

// DeclarationResponse represents a declaration in JSON.
type DeclarationResponse struct {
	Status      string             `json:"status"`
	Declaration *model.Declaration `json:"declaration"`
}

// ExcuseResponse represents an excuse request result in JSON. Kind is
// the stored kind, which may be "denied" when the weekly quota is spent.
type ExcuseResponse struct {
	Status    string        `json:"status"`
	Excuse    *model.Excuse `json:"excuse"`
	Used      int           `json:"used_this_week"`
	Remaining int           `json:"remaining_this_week"`
}

// RuleResponse represents a penalty arm result in JSON.
type RuleResponse struct {
	Status string             `json:"status"`
	Rule   *model.PenaltyRule `json:"rule"`
}

// TickResponse represents a penalty tick result in JSON.
type TickResponse struct {
	Status  string              `json:"status"`
	Date    string              `json:"date"`
	Created []model.PenaltyDebt `json:"created"`
}

// DebtsResponse represents the penalty debt list output in JSON.
type DebtsResponse struct {
	Date  string              `json:"date"`
	Debts []model.PenaltyDebt `json:"debts"`
	Count int                 `json:"count"`
}

// ActionResponse represents a debt close result in JSON.
type ActionResponse struct {
	Status string               `json:"status"`
	Action *model.PenaltyAction `json:"action"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
