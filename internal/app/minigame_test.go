package app_test

import (
	"testing"
	"time"

	"music-eras-service/internal/app"
	"music-eras-service/internal/domain"
	"music-eras-service/internal/random"
	"music-eras-service/internal/schedule"
)

func newTestGame(src random.Source) (*app.Minigame, *schedule.Manual, *recorder) {
	sched := schedule.NewManual()
	rec := &recorder{}
	game := app.NewMinigame(app.DefaultMinigameConfig(), domain.DefaultCatalog().Instruments, sched, src, rec, nil)
	return game, sched, rec
}

func TestStartRoundBuildsChoicesDeterministically(t *testing.T) {
	game, _, rec := newTestGame(random.NewScript(0))
	game.StartRound(1)

	state := game.State()
	if state.Phase != domain.PhaseActive || state.AnswerID != "guitar" {
		t.Fatalf("unexpected state %+v", state)
	}
	want := []string{"timpani", "trumpet", "harpsichord", "guitar"}
	got := rec.started[0].ChoiceIDs()
	if len(got) != len(want) {
		t.Fatalf("expected choices %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected choices %v, got %v", want, got)
		}
	}
	if rec.started[0].TimeRemaining != app.TimePerRound || rec.started[0].SpriteClass != "guitar" {
		t.Fatalf("unexpected round start %+v", rec.started[0])
	}
}

func TestChoicesContainAnswerExactlyOnce(t *testing.T) {
	game, _, _ := newTestGame(random.New(99))
	for round := 1; round <= 200; round++ {
		game.StartRound(1)
		state := game.State()
		if len(state.ChoiceIDs) != app.ChoiceCount {
			t.Fatalf("expected %d choices, got %v", app.ChoiceCount, state.ChoiceIDs)
		}
		seen := map[string]bool{}
		answers := 0
		for _, id := range state.ChoiceIDs {
			if seen[id] {
				t.Fatalf("duplicate choice in %v", state.ChoiceIDs)
			}
			seen[id] = true
			if id == state.AnswerID {
				answers++
			}
		}
		if answers != 1 {
			t.Fatalf("expected answer exactly once in %v (answer %s)", state.ChoiceIDs, state.AnswerID)
		}
	}
}

func TestSmallCatalogYieldsFewerChoices(t *testing.T) {
	sched := schedule.NewManual()
	rec := &recorder{}
	small := domain.DefaultCatalog().Instruments[:2]
	game := app.NewMinigame(app.DefaultMinigameConfig(), small, sched, random.New(1), rec, nil)

	game.StartRound(1)
	if got := len(game.State().ChoiceIDs); got != 2 {
		t.Fatalf("expected 2 choices, got %d", got)
	}
}

func TestStartRoundPastLastFinishesWithoutTimers(t *testing.T) {
	game, sched, rec := newTestGame(random.New(1))
	game.StartRound(app.TotalRounds + 1)

	if game.State().Phase != domain.PhaseFinished {
		t.Fatalf("expected finished, got %s", game.State().Phase)
	}
	if sched.Live() != 0 {
		t.Fatalf("expected no timers, got %d", sched.Live())
	}
	if len(rec.finished) != 1 || rec.finished[0].TotalRounds != app.TotalRounds || rec.finished[0].FinalScore != 0 {
		t.Fatalf("unexpected finish events %+v", rec.finished)
	}
	if len(rec.started) != 0 {
		t.Fatalf("no round should start")
	}
}

func TestRestartingRoundDoesNotLeakTimers(t *testing.T) {
	game, sched, _ := newTestGame(random.New(1))
	game.StartRound(1)
	if sched.LiveTimers() != 2 || sched.LiveFrames() != 1 {
		t.Fatalf("expected countdown, spawner and frame loop, got timers=%d frames=%d", sched.LiveTimers(), sched.LiveFrames())
	}
	game.StartRound(2)
	game.StartRound(3)
	if sched.LiveTimers() != 2 || sched.LiveFrames() != 1 {
		t.Fatalf("restart leaked timers: timers=%d frames=%d", sched.LiveTimers(), sched.LiveFrames())
	}
}

func TestSubmitChoiceTwiceScoresOnce(t *testing.T) {
	game, sched, rec := newTestGame(random.New(5))
	game.StartRound(1)
	answer := game.State().AnswerID

	if !game.SubmitChoice(answer) {
		t.Fatalf("first submit should be accepted")
	}
	if game.SubmitChoice(answer) {
		t.Fatalf("second submit should be ignored")
	}
	if game.State().Score != 1 || len(rec.revealed) != 1 {
		t.Fatalf("expected one scored reveal, got score=%d reveals=%d", game.State().Score, len(rec.revealed))
	}
	if !rec.revealed[0].Correct || rec.revealed[0].AnswerID != answer {
		t.Fatalf("unexpected reveal %+v", rec.revealed[0])
	}
	if sched.Live() != 0 || game.Running() {
		t.Fatalf("timers should stop on reveal, live=%d", sched.Live())
	}
}

func TestWrongChoiceRevealsAnswer(t *testing.T) {
	game, _, rec := newTestGame(random.New(11))
	game.StartRound(1)
	state := game.State()

	var wrong string
	for _, id := range state.ChoiceIDs {
		if id != state.AnswerID {
			wrong = id
			break
		}
	}
	game.SubmitChoice(wrong)
	rev := rec.lastRevealed()
	if rev.Correct || rev.TimedOut || rev.Score != 0 || rev.AnswerID != state.AnswerID {
		t.Fatalf("unexpected reveal %+v", rev)
	}
	if rev.Standing != domain.StandingBad {
		t.Fatalf("expected bad standing, got %s", rev.Standing)
	}
}

func TestUnknownChoiceIsIgnored(t *testing.T) {
	game, _, rec := newTestGame(random.New(2))
	game.StartRound(1)

	if game.SubmitChoice("kazoo") {
		t.Fatalf("unknown choice should be ignored")
	}
	if game.State().Phase != domain.PhaseActive || len(rec.revealed) != 0 {
		t.Fatalf("state changed on unknown choice")
	}
}

func TestCountdownExpiryRevealsWrong(t *testing.T) {
	game, sched, rec := newTestGame(random.New(3))
	game.StartRound(1)

	sched.Advance(time.Duration(app.TimePerRound-1) * time.Second)
	if game.State().Phase != domain.PhaseActive {
		t.Fatalf("round ended early")
	}
	sched.Advance(time.Second)

	if game.State().Phase != domain.PhaseRevealed {
		t.Fatalf("expected revealed after countdown, got %s", game.State().Phase)
	}
	if len(rec.ticks) != app.TimePerRound || rec.ticks[len(rec.ticks)-1].TimeRemaining != 0 {
		t.Fatalf("expected %d ticks ending at 0, got %+v", app.TimePerRound, rec.ticks)
	}
	rev := rec.lastRevealed()
	if rev.Correct || !rev.TimedOut || game.State().Score != 0 {
		t.Fatalf("unexpected timeout reveal %+v", rev)
	}
	if sched.Live() != 0 {
		t.Fatalf("timers still live after timeout: %d", sched.Live())
	}

	// A click after the timeout is a stale event.
	if game.SubmitChoice(rev.AnswerID) {
		t.Fatalf("submit after timeout should be ignored")
	}
}

func TestSpawnerAndFramesAnimateNotes(t *testing.T) {
	game, sched, rec := newTestGame(random.New(4))
	game.StartRound(1)

	sched.Advance(1200 * time.Millisecond)
	sched.Frames(1)
	if len(rec.noteFrames) != 1 || len(rec.noteFrames[0]) != 3 {
		t.Fatalf("expected a frame with 3 notes, got %v", rec.noteFrames)
	}

	game.SubmitChoice(game.State().AnswerID)
	sched.Frames(2)
	if len(rec.noteFrames) != 1 {
		t.Fatalf("frames kept running after reveal")
	}
}

func TestAdvanceOnlyFromRevealed(t *testing.T) {
	game, _, _ := newTestGame(random.New(6))
	if game.Advance() {
		t.Fatalf("advance from idle should be ignored")
	}
	game.StartRound(1)
	if game.Advance() {
		t.Fatalf("advance from active should be ignored")
	}
	game.SubmitChoice(game.State().AnswerID)
	if !game.Advance() {
		t.Fatalf("advance from revealed should start next round")
	}
	if game.State().RoundNumber != 2 || game.State().Phase != domain.PhaseActive {
		t.Fatalf("unexpected state %+v", game.State())
	}
}

func TestFullGameFinalScore(t *testing.T) {
	game, sched, rec := newTestGame(random.New(8))
	game.StartRound(1)

	expected := 0
	for round := 1; round <= app.TotalRounds; round++ {
		state := game.State()
		if state.RoundNumber != round {
			t.Fatalf("expected round %d, got %d", round, state.RoundNumber)
		}
		switch round % 3 {
		case 0:
			sched.Advance(time.Duration(app.TimePerRound) * time.Second)
		case 1:
			game.SubmitChoice(state.AnswerID)
			expected++
		default:
			for _, id := range state.ChoiceIDs {
				if id != state.AnswerID {
					game.SubmitChoice(id)
					break
				}
			}
		}
		if state := game.State(); state.Score > round {
			t.Fatalf("score %d exceeds round %d", state.Score, round)
		}
		game.Advance()
	}

	if game.State().Phase != domain.PhaseFinished {
		t.Fatalf("expected finished, got %s", game.State().Phase)
	}
	if len(rec.finished) != 1 || rec.finished[0].FinalScore != expected {
		t.Fatalf("expected final score %d, got %+v", expected, rec.finished)
	}
	if game.Advance() {
		t.Fatalf("advance after finish should be ignored")
	}
	if sched.Live() != 0 {
		t.Fatalf("timers live after finish: %d", sched.Live())
	}
}

func TestResetCancelsEverything(t *testing.T) {
	game, sched, _ := newTestGame(random.New(9))
	game.StartRound(1)
	game.SubmitChoice(game.State().AnswerID)
	game.Advance()

	game.Reset()
	state := game.State()
	if state.Phase != domain.PhaseIdle || state.RoundNumber != 1 || state.Score != 0 || state.AnswerID != "" {
		t.Fatalf("unexpected state after reset %+v", state)
	}
	if sched.Live() != 0 {
		t.Fatalf("reset leaked timers: %d", sched.Live())
	}
	if _, ok := game.CurrentClip(); ok {
		t.Fatalf("no clip expected after reset")
	}

	if !game.EnsureFreshRound() {
		t.Fatalf("expected fresh round from idle")
	}
	if game.EnsureFreshRound() {
		t.Fatalf("fresh round should not restart an active game")
	}
	if clip, ok := game.CurrentClip(); !ok || clip == "" {
		t.Fatalf("expected clip for active round")
	}
}
