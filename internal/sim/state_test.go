package sim

import "testing"

// TestNewGameState verifies the starting state for each mode
func TestNewGameState(t *testing.T) {
	for _, mode := range []Mode{ModePractice, ModeQuickPlay, ModeHRDerby} {
		s := NewGameState(mode)
		if s.Inning != 1 {
			t.Errorf("%s: expected inning 1, got %d", mode, s.Inning)
		}
		if !s.TopOfInning {
			t.Errorf("%s: expected top of the 1st", mode)
		}
		if s.GameOver {
			t.Errorf("%s: new game should not be over", mode)
		}
	}
}

// TestParseMode verifies mode parsing accepts only the three wire names
func TestParseMode(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"practice", true},
		{"quickPlay", true},
		{"hrDerby", true},
		{"derby", false},
		{"", false},
		{"QuickPlay", false},
	}
	for _, tt := range tests {
		if _, ok := ParseMode(tt.in); ok != tt.ok {
			t.Errorf("ParseMode(%q) ok=%v, want %v", tt.in, ok, tt.ok)
		}
	}
}

// TestThirdStrikeIsStrikeout verifies three strikes record an out and reset
// the count
func TestThirdStrikeIsStrikeout(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	s = s.RecordStrike()
	s = s.RecordStrike()
	if s.Strikes != 2 {
		t.Fatalf("Expected 2 strikes, got %d", s.Strikes)
	}

	s = s.RecordStrike()
	if s.LastResult != "strikeout" {
		t.Errorf("Expected strikeout, got %q", s.LastResult)
	}
	if s.Strikes != 0 || s.Balls != 0 {
		t.Errorf("Count should reset, got %d-%d", s.Balls, s.Strikes)
	}
	if s.Outs != 1 {
		t.Errorf("Expected 1 out, got %d", s.Outs)
	}
}

// TestFoulNeverStrikesOut verifies a foul only adds a strike below two
func TestFoulNeverStrikesOut(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	s = s.RecordStrike()
	s = s.RecordStrike()

	for i := 0; i < 5; i++ {
		s = s.RecordFoul()
	}
	if s.Strikes != 2 {
		t.Errorf("Fouls pushed strikes to %d", s.Strikes)
	}
	if s.Outs != 0 {
		t.Errorf("Fouls recorded %d outs", s.Outs)
	}
	if s.Stats.Fouls != 5 {
		t.Errorf("Expected 5 fouls tracked, got %d", s.Stats.Fouls)
	}
}

// TestFourthBallIsWalk verifies four balls walk the batter and reset the count
func TestFourthBallIsWalk(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	for i := 0; i < 3; i++ {
		s = s.RecordBall()
	}
	if s.Balls != 3 {
		t.Fatalf("Expected 3 balls, got %d", s.Balls)
	}

	s = s.RecordBall()
	if s.LastResult != "walk" {
		t.Errorf("Expected walk, got %q", s.LastResult)
	}
	if !s.Bases.First {
		t.Error("Walked batter should stand on first")
	}
	if s.Balls != 0 || s.Strikes != 0 {
		t.Errorf("Count should reset, got %d-%d", s.Balls, s.Strikes)
	}
}

// TestWalkForcesOnlyForcedRunners verifies the forced-advance chain
func TestWalkForcesOnlyForcedRunners(t *testing.T) {
	// Runner on second only: a walk must not move him.
	s := NewGameState(ModeQuickPlay)
	s.Bases.Second = true
	s.Balls = 3
	s = s.RecordBall()
	if !s.Bases.First || !s.Bases.Second || s.Bases.Third {
		t.Errorf("Unforced runner moved: %+v", s.Bases)
	}

	// Bases loaded: everyone is forced, one run scores.
	s = NewGameState(ModeQuickPlay)
	s.Bases = Bases{First: true, Second: true, Third: true}
	s.Balls = 3
	s = s.RecordBall()
	if !s.Bases.First || !s.Bases.Second || !s.Bases.Third {
		t.Errorf("Bases should stay loaded after a walk: %+v", s.Bases)
	}
	if s.Runs.Away != 1 {
		t.Errorf("Expected 1 run forced in, got %d", s.Runs.Away)
	}
}

// TestTripleScoresTrailingRunners verifies a triple with runners on second
// and third scores exactly two, batter standing on third
func TestTripleScoresTrailingRunners(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	s.Bases = Bases{Second: true, Third: true}

	s = s.ApplyFielding(OutcomeTriple)

	if s.Runs.Away != 2 {
		t.Errorf("Expected 2 runs, got %d", s.Runs.Away)
	}
	if s.Bases.First || s.Bases.Second || !s.Bases.Third {
		t.Errorf("Batter alone on third expected, got %+v", s.Bases)
	}
	if s.Stats.Triples != 1 {
		t.Errorf("Expected 1 triple, got %d", s.Stats.Triples)
	}
}

// TestGrandSlam verifies a homer with the bases loaded scores four and
// clears the bases
func TestGrandSlam(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	s.Bases = Bases{First: true, Second: true, Third: true}

	s = s.ApplyFielding(OutcomeHomeRun)

	if s.Runs.Away != 4 {
		t.Errorf("Expected 4 runs, got %d", s.Runs.Away)
	}
	if s.Bases.First || s.Bases.Second || s.Bases.Third {
		t.Errorf("Bases should be empty, got %+v", s.Bases)
	}
	if s.Stats.HomeRuns != 1 {
		t.Errorf("Expected 1 homer, got %d", s.Stats.HomeRuns)
	}
}

// TestSingleAdvancesRunnersOneBase verifies single moves everyone up one
func TestSingleAdvancesRunnersOneBase(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	s.Bases = Bases{First: true, Third: true}

	s = s.ApplyFielding(OutcomeSingle)

	if !s.Bases.First || !s.Bases.Second || s.Bases.Third {
		t.Errorf("Expected first and second occupied, got %+v", s.Bases)
	}
	if s.Runs.Away != 1 {
		t.Errorf("Runner from third should score, got %d runs", s.Runs.Away)
	}
}

// TestErrorAdvancesWithoutHitCredit verifies an error reaches base but never
// counts as a hit or extends the streak
func TestErrorAdvancesWithoutHitCredit(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	s = s.ApplyFielding(OutcomeSingle)
	streak := s.Stats.HitStreak

	s = s.ApplyFielding(OutcomeError)
	if !s.Bases.First || !s.Bases.Second {
		t.Errorf("Error should put batter on first, push runner: %+v", s.Bases)
	}
	if got := s.Stats.Singles + s.Stats.Doubles + s.Stats.Triples; got != 1 {
		t.Errorf("Error credited a hit, total %d", got)
	}
	if s.Stats.HitStreak != streak {
		t.Errorf("Error changed the hit streak: %d -> %d", streak, s.Stats.HitStreak)
	}
}

// TestOutsNeverHoldThree verifies the third out always rolls the half-inning
func TestOutsNeverHoldThree(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	for i := 0; i < 20; i++ {
		s = s.ApplyFielding(OutcomeOut)
		if s.Outs < 0 || s.Outs > 2 {
			t.Fatalf("Outs out of range after %d outs: %d", i+1, s.Outs)
		}
		if s.GameOver {
			break
		}
	}
}

// TestHalfInningFlip verifies three outs flip the half and clear the bases
func TestHalfInningFlip(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	s.Bases = Bases{First: true, Second: true}

	for i := 0; i < 3; i++ {
		s = s.ApplyFielding(OutcomeOut)
	}

	if s.TopOfInning {
		t.Error("Expected bottom of the 1st")
	}
	if s.Inning != 1 {
		t.Errorf("Expected inning 1, got %d", s.Inning)
	}
	if s.Bases.First || s.Bases.Second || s.Bases.Third {
		t.Errorf("Bases should clear between halves: %+v", s.Bases)
	}
}

// TestQuickPlayEndsAfterThreeInnings verifies the game-over boundary
func TestQuickPlayEndsAfterThreeInnings(t *testing.T) {
	s := NewGameState(ModeQuickPlay)

	// 3 innings x 2 halves x 3 outs
	for half := 0; half < 6; half++ {
		for o := 0; o < 3; o++ {
			s = s.ApplyFielding(OutcomeOut)
		}
	}

	if !s.GameOver {
		t.Error("Quick play should end after the bottom of the 3rd")
	}
}

// TestPracticeNeverEnds verifies practice mode has no inning limit
func TestPracticeNeverEnds(t *testing.T) {
	s := NewGameState(ModePractice)
	for half := 0; half < 40; half++ {
		for o := 0; o < 3; o++ {
			s = s.ApplyFielding(OutcomeOut)
		}
	}
	if s.GameOver {
		t.Error("Practice mode ended")
	}
	if s.Inning != 21 {
		t.Errorf("Expected inning 21 after 40 halves, got %d", s.Inning)
	}
}

// TestDerbyOutBudget verifies every non-homer spends a derby out and the
// game ends exactly at the cap
func TestDerbyOutBudget(t *testing.T) {
	s := NewGameState(ModeHRDerby)
	budget := RulesFor(ModeHRDerby).DerbyOutCap

	for i := 0; i < budget; i++ {
		if s.GameOver {
			t.Fatalf("Game over early at %d derby outs", s.Stats.DerbyOuts)
		}
		switch i % 4 {
		case 0:
			s = s.RecordTakeOut()
		case 1:
			s = s.RecordDerbyMiss(ContactWhiff)
		case 2:
			s = s.RecordDerbyMiss(ContactFoul)
		default:
			s = s.ApplyFielding(OutcomeSingle) // anything short of a homer
		}
	}

	if !s.GameOver {
		t.Errorf("Expected game over at %d derby outs, got %d", budget, s.Stats.DerbyOuts)
	}
	if s.Stats.DerbyOuts != budget {
		t.Errorf("Expected exactly %d derby outs, got %d", budget, s.Stats.DerbyOuts)
	}
}

// TestDerbyHomeRunScoresOne verifies derby homers score one run each and
// never spend an out
func TestDerbyHomeRunScoresOne(t *testing.T) {
	s := NewGameState(ModeHRDerby)
	for i := 0; i < 5; i++ {
		s = s.ApplyFielding(OutcomeHomeRun)
	}
	if s.Runs.Home != 5 {
		t.Errorf("Expected 5 derby runs, got %d", s.Runs.Home)
	}
	if s.Stats.DerbyOuts != 0 {
		t.Errorf("Homers spent %d derby outs", s.Stats.DerbyOuts)
	}
	if s.GameOver {
		t.Error("Derby ended on home runs")
	}
}

// TestRunsCreditBattingHalf verifies runs land on the side at the plate
func TestRunsCreditBattingHalf(t *testing.T) {
	s := NewGameState(ModeQuickPlay)
	s = s.ApplyFielding(OutcomeHomeRun)
	if s.Runs.Away != 1 || s.Runs.Home != 0 {
		t.Errorf("Top-half run should credit away: %+v", s.Runs)
	}

	// Flip to the bottom half and score again.
	for i := 0; i < 3; i++ {
		s = s.ApplyFielding(OutcomeOut)
	}
	s = s.ApplyFielding(OutcomeHomeRun)
	if s.Runs.Home != 1 {
		t.Errorf("Bottom-half run should credit home: %+v", s.Runs)
	}
}

// TestHitStreakTracking verifies streak growth and reset on outs
func TestHitStreakTracking(t *testing.T) {
	s := NewGameState(ModePractice)
	s = s.ApplyFielding(OutcomeSingle)
	s = s.ApplyFielding(OutcomeDouble)
	s = s.ApplyFielding(OutcomeHomeRun)
	if s.Stats.HitStreak != 3 {
		t.Errorf("Expected streak 3, got %d", s.Stats.HitStreak)
	}

	s = s.ApplyFielding(OutcomeOut)
	if s.Stats.HitStreak != 0 {
		t.Errorf("Out should reset the streak, got %d", s.Stats.HitStreak)
	}
	if s.Stats.LongestStreak != 3 {
		t.Errorf("Longest streak should remember 3, got %d", s.Stats.LongestStreak)
	}
}

// TestStateValueSemantics verifies transitions never mutate the receiver
func TestStateValueSemantics(t *testing.T) {
	orig := NewGameState(ModeQuickPlay)
	_ = orig.RecordStrike()
	_ = orig.RecordBall()
	_ = orig.ApplyFielding(OutcomeHomeRun)

	if orig.Strikes != 0 || orig.Balls != 0 || orig.Runs.Away != 0 {
		t.Errorf("Receiver mutated: %+v", orig)
	}
}
