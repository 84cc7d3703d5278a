package classify

import (
	"testing"
)

func TestEpisode(t *testing.T) {
	tests := []struct {
		title     string
		isSpecial bool
		tType     string
	}{
		{"Tournament of Champions Show #8001 - aired May 15, 2024", true, "Tournament of Champions"},
		{"Show #8001, Tournament of Champions quarterfinal game 1", true, "Tournament of Champions"},
		{"TOURNAMENT OF CHAMPIONS final", true, "Tournament of Champions"},
		{"Celebrity Jeopardy! Show #42", true, "Celebrity"},
		{"Teen Tournament semifinal", true, "Teen Tournament"},
		{"College Championship game 2", true, "College Championship"},
		{"Teachers Tournament final", true, "Teachers Tournament"},
		{"Battle of the Decades Show #6700", true, "Battle of the Decades"},
		{"Kids Week game 3", true, "Kids Week"},
		{"Show #8000 - aired January 1, 2024", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			isSpecial, tType := Episode(tt.title)
			if isSpecial != tt.isSpecial {
				t.Errorf("Episode(%q) isSpecial = %v, expected %v", tt.title, isSpecial, tt.isSpecial)
			}
			if tType != tt.tType {
				t.Errorf("Episode(%q) tournamentType = %q, expected %q", tt.title, tType, tt.tType)
			}
		})
	}
}

func TestEpisodeSpecificPhraseWins(t *testing.T) {
	// A title containing both the specific and generic phrase must report
	// the specific label.
	isSpecial, tType := Episode("Ultimate Tournament of Champions round 1")
	if !isSpecial {
		t.Fatal("expected special episode")
	}
	if tType != "Tournament of Champions" && tType != "Ultimate Tournament of Champions" {
		t.Errorf("unexpected tournament type %q", tType)
	}
	if tType == "Tournament" {
		t.Error("generic phrase should not win over specific ones")
	}
}

func TestEpisodeIn(t *testing.T) {
	vocab := append(DefaultVocabulary(), Phrase{"greatest of all time", "Greatest of All Time"})

	isSpecial, tType := EpisodeIn("The Greatest of All Time match 1", vocab)
	if !isSpecial || tType != "Greatest of All Time" {
		t.Errorf("extended vocabulary miss: isSpecial=%v type=%q", isSpecial, tType)
	}
}

func TestEpisodeInMixedCasePhrase(t *testing.T) {
	// Configured phrases are written in whatever register the operator
	// chooses; matching must stay case-insensitive on both sides.
	vocab := append(DefaultVocabulary(), Phrase{"Greatest of All Time", "Greatest of All Time"})

	isSpecial, tType := EpisodeIn("The Greatest of All Time match 1", vocab)
	if !isSpecial {
		t.Fatal("capitalized phrase should still match")
	}
	if tType != "Greatest of All Time" {
		t.Errorf("tournamentType = %q", tType)
	}

	isSpecial, tType = EpisodeIn("the greatest of all time rematch", vocab)
	if !isSpecial || tType != "Greatest of All Time" {
		t.Errorf("lowercase title against capitalized phrase: isSpecial=%v type=%q", isSpecial, tType)
	}
}

func TestShowNumber(t *testing.T) {
	tests := []struct {
		title string
		num   int
		ok    bool
	}{
		{"Show #8000 - aired January 1, 2024", 8000, true},
		{"show #123", 123, true},
		{"#8000, aired 2024-01-01", 8000, true},
		{"no number here", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			num, ok := ShowNumber(tt.title)
			if ok != tt.ok || num != tt.num {
				t.Errorf("ShowNumber(%q) = (%d, %v), expected (%d, %v)", tt.title, num, ok, tt.num, tt.ok)
			}
		})
	}
}

func TestSeason(t *testing.T) {
	s := Season("showseason.php?season=40")
	if s == nil || *s != 40 {
		t.Errorf("Season() = %v, expected 40", s)
	}

	if Season("showgame.php?game_id=8000") != nil {
		t.Error("expected nil for non-season link")
	}
	if Season("") != nil {
		t.Error("expected nil for empty href")
	}
}
