package domain

// Choice is one selectable option of a round.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// RoundStarted is emitted when a round enters the active phase.
type RoundStarted struct {
	RoundNumber   int      `json:"roundNumber"`
	TotalRounds   int      `json:"totalRounds"`
	Choices       []Choice `json:"choices"`
	TimeRemaining int      `json:"timeRemaining"`
	Score         int      `json:"score"`
	SpriteClass   string   `json:"spriteClass"`
}

// ChoiceIDs returns the ids of the round's choices in display order.
func (r RoundStarted) ChoiceIDs() []string {
	ids := make([]string, len(r.Choices))
	for i, c := range r.Choices {
		ids[i] = c.ID
	}
	return ids
}

// Tick reports the countdown.
type Tick struct {
	TimeRemaining int `json:"timeRemaining"`
}

// Revealed is emitted once per round when the answer is shown.
type Revealed struct {
	Correct     bool     `json:"correct"`
	TimedOut    bool     `json:"timedOut"`
	AnswerID    string   `json:"answerInstrumentId"`
	AnswerLabel string   `json:"answerLabel"`
	Score       int      `json:"score"`
	Standing    Standing `json:"standing"`
}

// GameFinished is the terminal minigame event.
type GameFinished struct {
	FinalScore  int `json:"finalScore"`
	TotalRounds int `json:"totalRounds"`
}

// FeedbackStatus reports the feedback widget cooldown.
type FeedbackStatus struct {
	Remaining int `json:"remaining"`
}
