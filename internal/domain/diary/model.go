package diary

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type EntryType string

const (
	EntryIntake       EntryType = "intake"
	EntryVoid         EntryType = "void"
	EntryIncontinence EntryType = "incontinence"
)

type Severity string

const (
	SeverityDry    Severity = "dry"
	SeverityDamp   Severity = "damp"
	SeverityWet    Severity = "wet"
	SeveritySoaked Severity = "soaked"
)

// Profile is a singleton record. It carries no identifier and is always
// replaced wholesale, never merged field by field.
type Profile struct {
	Sex       Sex    `json:"sex"`
	BirthYear int    `json:"birth_year"`
	SleepTime string `json:"sleep_time"`
	WakeTime  string `json:"wake_time"`
}

// Day is one of up to three diary days.
type Day struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	DayNumber    int    `json:"day_number"`
	IsTypicalDay bool   `json:"is_typical_day"`
}

// Entry is a single diary event. Type decides which of the variant fields
// are meaningful; the rest stay at their zero value.
type Entry struct {
	ID        string    `json:"id"`
	DayID     string    `json:"day_id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EntryType `json:"type"`

	// intake
	BeverageType string `json:"beverage_type,omitempty"`
	IntakeMl     int    `json:"intake_ml,omitempty"`

	// void
	VoidMl          int  `json:"void_ml,omitempty"`
	IsEstimated     bool `json:"is_estimated,omitempty"`
	DurationSeconds int  `json:"duration_seconds,omitempty"`
	UrgencyScore    int  `json:"urgency_score,omitempty"`

	// incontinence
	Severity Severity `json:"severity,omitempty"`
	Activity string   `json:"activity,omitempty"`

	Note string `json:"note,omitempty"`
}

// Snapshot is the unit of synchronization: an immutable bundle of the three
// collections taken from the local replica at one point in time.
type Snapshot struct {
	Profile   *Profile  `json:"profile"`
	Days      []Day     `json:"days"`
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDay creates a day record for the given sequence position (1..3).
func NewDay(number int) Day {
	return Day{
		ID:           uuid.NewString(),
		Date:         time.Now().Format("2006-01-02"),
		DayNumber:    number,
		IsTypicalDay: true,
	}
}

// NewEntry creates an entry skeleton bound to a day. The caller fills in the
// variant fields for the chosen type.
func NewEntry(dayID string, typ EntryType) Entry {
	return Entry{
		ID:        uuid.NewString(),
		DayID:     dayID,
		Timestamp: time.Now(),
		Type:      typ,
	}
}

func (d Day) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("day: missing id")
	}
	if d.DayNumber < 1 || d.DayNumber > 3 {
		return fmt.Errorf("day %s: day_number %d out of range", d.ID, d.DayNumber)
	}
	return nil
}

func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("entry: missing id")
	}
	if e.DayID == "" {
		return fmt.Errorf("entry %s: missing day_id", e.ID)
	}
	switch e.Type {
	case EntryIntake, EntryVoid, EntryIncontinence:
	default:
		return fmt.Errorf("entry %s: unknown type %q", e.ID, e.Type)
	}
	return nil
}

// Validate checks the identity fields every merge depends on. Business
// plausibility of volumes and timestamps is not this package's concern.
func (s Snapshot) Validate() error {
	for _, d := range s.Days {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, e := range s.Entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}
