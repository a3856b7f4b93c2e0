// Package model defines the aggregate store document and the entities
// persisted inside it. The whole state of the tool is one versioned JSON
// document; collections are append-mostly and entity ids are either
// sequential (habits, declarations, excuses, rules) or derived from
// content (debts, actions) so that repeated operations are idempotent by
// construction.
package model

import (
	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/schedule"
)

// Version is the store document version this build reads and writes.
const Version = 1

// DefaultExcuseQuota is the weekly Allowed-excuse quota applied when a
// habit record predates the excuse feature.
const DefaultExcuseQuota = 2

// Period distinguishes day-target habits from week-target habits.
type Period string

const (
	PeriodDay  Period = "day"
	PeriodWeek Period = "week"
)

// Valid reports whether the period is one of the two supported values.
func (p Period) Valid() bool {
	return p == PeriodDay || p == PeriodWeek
}

// Store is the aggregate persisted document.
type Store struct {
	Version        int             `json:"version"`
	Meta           Meta            `json:"meta"`
	Habits         []Habit         `json:"habits"`
	Checkins       []Checkin       `json:"checkins"`
	Declarations   []Declaration   `json:"declarations"`
	Excuses        []Excuse        `json:"excuses"`
	PenaltyRules   []PenaltyRule   `json:"penalty_rules"`
	PenaltyDebts   []PenaltyDebt   `json:"penalty_debts"`
	PenaltyActions []PenaltyAction `json:"penalty_actions"`
}

// Meta holds the monotonically increasing id counters.
type Meta struct {
	NextHabitNumber       int `json:"next_habit_number"`
	NextDeclarationNumber int `json:"next_declaration_number"`
	NextExcuseNumber      int `json:"next_excuse_number"`
	NextPenaltyRuleNumber int `json:"next_penalty_rule_number"`
}

// Habit is a recurring habit with a day-of-week schedule and a target.
type Habit struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Schedule     schedule.Schedule `json:"schedule"`
	Target       Target            `json:"target"`
	Notes        string            `json:"notes,omitempty"`
	Archived     bool              `json:"archived"`
	CreatedDate  string            `json:"created_date"`
	ArchivedDate string            `json:"archived_date,omitempty"`

	// NeedsDeclaration gates check-ins behind an explicit declaration.
	// Records written before the gate existed unmarshal as false.
	NeedsDeclaration bool `json:"needs_declaration"`

	// ExcuseQuotaPerWeek is a pointer so that records written before the
	// excuse feature can be told apart from an explicit quota of 0.
	ExcuseQuotaPerWeek *int `json:"excuse_quota_per_week,omitempty"`
}

// ExcuseQuota returns the weekly Allowed-excuse quota, applying the
// forward-compatibility default for older records.
func (h *Habit) ExcuseQuota() int {
	if h.ExcuseQuotaPerWeek == nil {
		return DefaultExcuseQuota
	}
	return *h.ExcuseQuotaPerWeek
}

// SetExcuseQuota stores an explicit quota.
func (h *Habit) SetExcuseQuota(q int) {
	h.ExcuseQuotaPerWeek = &q
}

// Target is the per-period completion goal.
type Target struct {
	Period   Period `json:"period"`
	Quantity int    `json:"quantity"`
}

// Checkin is the raw recorded activity for one habit on one date.
// (habit_id, date) is unique; a quantity of 0 is represented by the
// absence of a record.
type Checkin struct {
	HabitID  string `json:"habit_id"`
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

// Declaration is an append-only stated-intent record. Its existence for
// (habit, date) satisfies the declaration gate for that date.
type Declaration struct {
	ID      string `json:"id"`
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
	TS      string `json:"ts"`
	Text    string `json:"text"`
}

// ExcuseKind is the recorded outcome of an excuse request.
type ExcuseKind string

const (
	ExcuseAllowed ExcuseKind = "allowed"
	ExcuseDenied  ExcuseKind = "denied"
)

// Excuse is an append-only per-date exemption record. Only Allowed
// excuses exempt a date from penalty evaluation; requests beyond the
// weekly quota are stored as Denied.
type Excuse struct {
	ID      string     `json:"id"`
	HabitID string     `json:"habit_id"`
	Date    string     `json:"date"`
	TS      string     `json:"ts"`
	Kind    ExcuseKind `json:"kind"`
	Reason  string     `json:"reason"`
}

// PenaltyRule arms the debt engine for one habit. One row per habit,
// replaced in place on re-arm.
type PenaltyRule struct {
	ID           string `json:"id"`
	HabitID      string `json:"habit_id"`
	Multiplier   int    `json:"multiplier"`
	Cap          int    `json:"cap"`
	DeadlineDays int    `json:"deadline_days"`
	ArmedDate    string `json:"armed_date"`
	ArmedTS      string `json:"armed_ts"`
}

// PenaltyDebt is an escalating makeup obligation. Its id is derived from
// (habit, trigger date), which is what makes re-ticking a no-op.
type PenaltyDebt struct {
	ID          string `json:"id"`
	HabitID     string `json:"habit_id"`
	TriggerDate string `json:"trigger_date"`
	DueDate     string `json:"due_date"`
	Quantity    int    `json:"quantity"`
	RuleID      string `json:"rule_id"`
	CreatedDate string `json:"created_date"`
	CreatedTS   string `json:"created_ts"`
}

// PenaltyActionKind closes a debt as either made up or written off.
type PenaltyActionKind string

const (
	ActionResolve PenaltyActionKind = "resolve"
	ActionVoid    PenaltyActionKind = "void"
)

// PenaltyAction closes a debt. Its id is derived from (debt, kind); the
// first action recorded for a debt is authoritative.
type PenaltyAction struct {
	ID     string            `json:"id"`
	DebtID string            `json:"debt_id"`
	Kind   PenaltyActionKind `json:"kind"`
	Date   string            `json:"date"`
	TS     string            `json:"ts"`
	Reason string            `json:"reason"`
}

// NewStore returns an empty store at the current version.
func NewStore() *Store {
	return &Store{
		Version: Version,
		Meta: Meta{
			NextHabitNumber:       1,
			NextDeclarationNumber: 1,
			NextExcuseNumber:      1,
			NextPenaltyRuleNumber: 1,
		},
	}
}

// Normalize applies forward-compatibility defaults to a freshly decoded
// store: counters added after initial release default to 1 when unset so
// older documents keep loading.
func (s *Store) Normalize() {
	if s.Meta.NextDeclarationNumber < 1 {
		s.Meta.NextDeclarationNumber = 1
	}
	if s.Meta.NextExcuseNumber < 1 {
		s.Meta.NextExcuseNumber = 1
	}
	if s.Meta.NextPenaltyRuleNumber < 1 {
		s.Meta.NextPenaltyRuleNumber = 1
	}
}

// Validate checks the structural invariants required of the document,
// both after read and before write. A store failing validation must
// never be committed.
func (s *Store) Validate() error {
	if s.Version != Version {
		return errors.NewIOError("store corrupted", errors.ErrStoreCorrupted)
	}
	if s.Meta.NextHabitNumber < 1 ||
		s.Meta.NextDeclarationNumber < 1 ||
		s.Meta.NextExcuseNumber < 1 ||
		s.Meta.NextPenaltyRuleNumber < 1 {
		return errors.NewIOError("store corrupted", errors.ErrStoreCorrupted)
	}
	return nil
}

// FindHabit returns the habit with the given id, or nil.
func (s *Store) FindHabit(id string) *Habit {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return &s.Habits[i]
		}
	}
	return nil
}

// FindDebt returns the debt with the given id, or nil.
func (s *Store) FindDebt(id string) *PenaltyDebt {
	for i := range s.PenaltyDebts {
		if s.PenaltyDebts[i].ID == id {
			return &s.PenaltyDebts[i]
		}
	}
	return nil
}
