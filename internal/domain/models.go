package domain

import "fmt"

// Question is one entry of the quiz answer key.
type Question struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// Instrument is a minigame catalog entry.
type Instrument struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	SpriteClass string `json:"spriteClass"`
	AudioRef    string `json:"audioRef"`
}

// Catalog bundles the static content a page session is built from.
type Catalog struct {
	ID          string            `json:"id"`
	Questions   []Question        `json:"questions"`
	Instruments []Instrument      `json:"instruments"`
	EraTracks   map[string]string `json:"eraTracks"`
}

// Validate rejects catalogs the engines cannot run on.
func (c Catalog) Validate() error {
	if len(c.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidCatalog)
	}
	if len(c.Instruments) == 0 {
		return fmt.Errorf("%w: no instruments", ErrInvalidCatalog)
	}
	seen := make(map[string]struct{}, len(c.Questions))
	for _, q := range c.Questions {
		if q.ID == "" {
			return fmt.Errorf("%w: question without id", ErrInvalidCatalog)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question %q", ErrInvalidCatalog, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	seen = make(map[string]struct{}, len(c.Instruments))
	for _, inst := range c.Instruments {
		if inst.ID == "" {
			return fmt.Errorf("%w: instrument without id", ErrInvalidCatalog)
		}
		if _, dup := seen[inst.ID]; dup {
			return fmt.Errorf("%w: duplicate instrument %q", ErrInvalidCatalog, inst.ID)
		}
		seen[inst.ID] = struct{}{}
	}
	return nil
}

// Instrument looks up a catalog instrument by id.
func (c Catalog) Instrument(id string) (Instrument, bool) {
	for _, inst := range c.Instruments {
		if inst.ID == id {
			return inst, true
		}
	}
	return Instrument{}, false
}

// Phase is the minigame's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseRevealed
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseRevealed:
		return "revealed"
	case PhaseFinished:
		return "finished"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Standing is the coarse performance bucket used for score styling.
type Standing string

const (
	StandingGood Standing = "good"
	StandingBad  Standing = "bad"
)

// StandingThreshold is the correct ratio at or above which a standing is good.
const StandingThreshold = 0.6

// StandingFor buckets correct/total; an empty total counts as bad.
func StandingFor(correct, total int) Standing {
	if total <= 0 {
		return StandingBad
	}
	if float64(correct)/float64(total) >= StandingThreshold {
		return StandingGood
	}
	return StandingBad
}

// RoundState is a read-only snapshot of the minigame.
type RoundState struct {
	RoundNumber   int      `json:"roundNumber"`
	AnswerID      string   `json:"answerInstrumentId,omitempty"`
	ChoiceIDs     []string `json:"choiceIds"`
	Score         int      `json:"score"`
	TimeRemaining int      `json:"timeRemaining"`
	Phase         Phase    `json:"phase"`
}

// QuestionResult is the per-question outcome of a grading pass.
type QuestionResult struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	ReviewText string `json:"reviewText,omitempty"`
}

// GradeResult is computed once per submission and never mutated.
type GradeResult struct {
	CorrectCount int              `json:"correctCount"`
	Total        int              `json:"total"`
	PerQuestion  []QuestionResult `json:"perQuestion"`
	ReviewLines  []string         `json:"reviewLines"`
	Standing     Standing         `json:"standing"`
}

// Nudge asks the user to answer a question before grading can run.
type Nudge struct {
	QuestionID string `json:"questionId"`
}
