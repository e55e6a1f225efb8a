package app_test

import (
	"strings"
	"testing"

	"music-eras-service/internal/app"
	"music-eras-service/internal/domain"
)

func newTestQuiz() (*app.Quiz, *recorder) {
	rec := &recorder{}
	return app.NewQuiz(domain.DefaultCatalog().Questions, rec, nil), rec
}

func answerAll(q *app.Quiz, overrides map[string]string) {
	for _, question := range domain.DefaultCatalog().Questions {
		value := question.CorrectAnswer
		if v, ok := overrides[question.ID]; ok {
			value = v
		}
		q.RecordSelection(question.ID, value)
	}
}

func TestSubmitNudgesFirstUnanswered(t *testing.T) {
	quiz, rec := newTestQuiz()
	answerAll(quiz, map[string]string{"q2": "", "q5": ""})
	quiz.RecordSelection("q1", "Baroque")

	res := quiz.Submit()
	if res.Outcome != app.SubmitNudged || res.Nudge.QuestionID != "q2" {
		t.Fatalf("expected nudge for q2, got %+v", res)
	}
	if quiz.Submitted() {
		t.Fatalf("nudge must not lock the quiz")
	}
	if len(rec.nudges) != 1 || len(rec.graded) != 0 {
		t.Fatalf("expected one nudge and no grade, got %d/%d", len(rec.nudges), len(rec.graded))
	}
	if !quiz.RecordSelection("q2", "Classical") {
		t.Fatalf("selection should still be accepted after a nudge")
	}
}

func TestSubmitNormalizesAnswers(t *testing.T) {
	quiz, rec := newTestQuiz()
	answerAll(quiz, map[string]string{"q1": " baroque ", "q6": "ARNOLD SCHOENBERG"})

	res := quiz.Submit()
	if res.Outcome != app.SubmitGraded {
		t.Fatalf("expected grade, got %+v", res)
	}
	if res.Grade.CorrectCount != 8 || res.Grade.Total != 8 {
		t.Fatalf("expected 8/8, got %d/%d", res.Grade.CorrectCount, res.Grade.Total)
	}
	if len(res.Grade.ReviewLines) != 0 {
		t.Fatalf("expected no review lines, got %v", res.Grade.ReviewLines)
	}
	if res.Grade.Standing != domain.StandingGood {
		t.Fatalf("expected good standing")
	}
	if len(rec.graded) != 1 {
		t.Fatalf("expected graded event")
	}
}

func TestSubmitReviewsWrongAnswer(t *testing.T) {
	quiz, _ := newTestQuiz()
	answerAll(quiz, map[string]string{"q6": "Debussy"})

	res := quiz.Submit()
	if res.Grade.CorrectCount != 7 {
		t.Fatalf("expected 7 correct, got %d", res.Grade.CorrectCount)
	}
	if len(res.Grade.ReviewLines) != 1 {
		t.Fatalf("expected one review line, got %v", res.Grade.ReviewLines)
	}
	line := res.Grade.ReviewLines[0]
	q6 := domain.DefaultCatalog().Questions[5]
	for _, part := range []string{q6.Title, "Arnold Schoenberg", q6.Explanation} {
		if !strings.Contains(line, part) {
			t.Fatalf("review line %q missing %q", line, part)
		}
	}
	for _, pq := range res.Grade.PerQuestion {
		if pq.QuestionID == "q6" && (pq.Correct || pq.ReviewText != line) {
			t.Fatalf("unexpected q6 result %+v", pq)
		}
	}
}

func TestReviewLineOmitsEmptyExplanation(t *testing.T) {
	rec := &recorder{}
	quiz := app.NewQuiz([]domain.Question{{ID: "q1", CorrectAnswer: "Lied"}}, rec, nil)
	quiz.RecordSelection("q1", "Opera")

	res := quiz.Submit()
	if got := res.Grade.ReviewLines[0]; got != "(Question) — Correct: Lied" {
		t.Fatalf("unexpected review line %q", got)
	}
}

func TestSubmitLocksUntilRetry(t *testing.T) {
	quiz, rec := newTestQuiz()
	answerAll(quiz, map[string]string{"q3": "Sonata"})
	first := quiz.Submit()

	if quiz.RecordSelection("q3", "Concerto") {
		t.Fatalf("selection should be rejected after grading")
	}
	if again := quiz.Submit(); again.Outcome != app.SubmitIgnored {
		t.Fatalf("second submit should be ignored, got %+v", again)
	}
	if len(rec.graded) != 1 {
		t.Fatalf("expected a single grade event")
	}
	if last, ok := quiz.LastResult(); !ok || last.CorrectCount != first.Grade.CorrectCount {
		t.Fatalf("expected last result to match first grade")
	}

	quiz.Retry()
	if quiz.Submitted() || len(quiz.Selections()) != 0 {
		t.Fatalf("retry should unlock and clear selections")
	}
	if _, ok := quiz.LastResult(); ok {
		t.Fatalf("retry should discard the grade")
	}

	answerAll(quiz, nil)
	res := quiz.Submit()
	if res.Grade.CorrectCount != res.Grade.Total {
		t.Fatalf("expected all correct after retry, got %d/%d", res.Grade.CorrectCount, res.Grade.Total)
	}
}

func TestUnknownQuestionExcludedFromTotal(t *testing.T) {
	quiz, _ := newTestQuiz()
	answerAll(quiz, nil)
	quiz.RecordSelection("q99", "Baroque")

	res := quiz.Submit()
	if res.Grade.Total != 8 || res.Grade.CorrectCount != 8 {
		t.Fatalf("expected 8/8, got %d/%d", res.Grade.CorrectCount, res.Grade.Total)
	}
	last := res.Grade.PerQuestion[len(res.Grade.PerQuestion)-1]
	if last.QuestionID != "q99" || last.Correct {
		t.Fatalf("expected q99 marked incorrect, got %+v", last)
	}
}
