package app

import (
	"sort"
	"strings"

	"go.uber.org/zap"
	"music-eras-service/internal/domain"
)

// SubmitOutcome classifies the result of Quiz.Submit.
type SubmitOutcome int

const (
	// SubmitIgnored means the quiz was already graded and is locked.
	SubmitIgnored SubmitOutcome = iota
	// SubmitNudged means a question is unanswered; nothing changed.
	SubmitNudged
	// SubmitGraded means a GradeResult was produced and selections locked.
	SubmitGraded
)

// SubmitResult is either a nudge or a grade, depending on Outcome.
type SubmitResult struct {
	Outcome SubmitOutcome
	Nudge   domain.Nudge
	Grade   domain.GradeResult
}

// Quiz collects answers for the eras quiz and grades them against the key.
// Like Minigame it is driven from a single thread.
type Quiz struct {
	questions  []domain.Question
	index      map[string]int
	selections map[string]string
	submitted  bool
	last       *domain.GradeResult
	listener   QuizListener
	log        *zap.Logger
}

func NewQuiz(questions []domain.Question, listener QuizListener, log *zap.Logger) *Quiz {
	if log == nil {
		log = zap.NewNop()
	}
	index := make(map[string]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}
	return &Quiz{
		questions:  append([]domain.Question(nil), questions...),
		index:      index,
		selections: make(map[string]string),
		listener:   listener,
		log:        log.Named("quiz"),
	}
}

// RecordSelection stores the chosen value for a question, replacing any
// earlier one. It reports false while the quiz is locked after grading.
func (q *Quiz) RecordSelection(questionID, value string) bool {
	if q.submitted {
		return false
	}
	q.selections[questionID] = value
	return true
}

// Submit grades the quiz, or nudges towards the first unanswered question.
func (q *Quiz) Submit() SubmitResult {
	if q.submitted {
		return SubmitResult{Outcome: SubmitIgnored}
	}

	for _, question := range q.questions {
		if normalize(q.selections[question.ID]) == "" {
			nudge := domain.Nudge{QuestionID: question.ID}
			q.listener.Nudged(nudge)
			return SubmitResult{Outcome: SubmitNudged, Nudge: nudge}
		}
	}

	result := q.grade()
	q.submitted = true
	q.last = &result
	q.log.Debug("quiz graded", zap.Int("correct", result.CorrectCount), zap.Int("total", result.Total))
	q.listener.Graded(result)
	return SubmitResult{Outcome: SubmitGraded, Grade: result}
}

// Retry clears every selection, drops the last grade and unlocks the quiz.
func (q *Quiz) Retry() {
	q.selections = make(map[string]string)
	q.submitted = false
	q.last = nil
}

// Submitted reports whether the quiz is locked on a grade.
func (q *Quiz) Submitted() bool {
	return q.submitted
}

// LastResult returns the grade of the current submission, if any.
func (q *Quiz) LastResult() (domain.GradeResult, bool) {
	if q.last == nil {
		return domain.GradeResult{}, false
	}
	return *q.last, true
}

// Selections returns a copy of the recorded answers.
func (q *Quiz) Selections() map[string]string {
	out := make(map[string]string, len(q.selections))
	for k, v := range q.selections {
		out[k] = v
	}
	return out
}

func (q *Quiz) grade() domain.GradeResult {
	result := domain.GradeResult{
		PerQuestion: make([]domain.QuestionResult, 0, len(q.selections)),
		ReviewLines: []string{},
	}

	for _, question := range q.questions {
		result.Total++
		ok := normalize(q.selections[question.ID]) == normalize(question.CorrectAnswer)
		entry := domain.QuestionResult{QuestionID: question.ID, Correct: ok}
		if ok {
			result.CorrectCount++
		} else {
			entry.ReviewText = reviewLine(question)
			result.ReviewLines = append(result.ReviewLines, entry.ReviewText)
		}
		result.PerQuestion = append(result.PerQuestion, entry)
	}

	// Answers for ids missing from the key count as wrong but not towards
	// the total.
	var unknown []string
	for id := range q.selections {
		if _, ok := q.index[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		q.log.Warn("selection for question missing from answer key", zap.String("question", id))
		result.PerQuestion = append(result.PerQuestion, domain.QuestionResult{QuestionID: id})
	}

	result.Standing = domain.StandingFor(result.CorrectCount, result.Total)
	return result
}

func reviewLine(q domain.Question) string {
	title := strings.TrimSpace(q.Title)
	if title == "" {
		title = "(Question)"
	}
	line := title + " — Correct: " + q.CorrectAnswer
	if q.Explanation != "" {
		line += " — " + q.Explanation
	}
	return line
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
