package models

// RoastSection is the critique of one aspect of a resume.
type RoastSection struct {
	Title   string `json:"title"`
	Emoji   string `json:"emoji"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// RoastResult is the full structured roast returned for one upload.
// Sections keep the order the model produced them in.
type RoastResult struct {
	Introduction string         `json:"introduction"`
	Sections     []RoastSection `json:"sections"`
	FinalVerdict string         `json:"finalVerdict"`
	MockScore    int            `json:"mockScore"`
	MockLabel    string         `json:"mockLabel"`
}

const (
	MinIntensity     = 1
	MaxIntensity     = 10
	DefaultIntensity = 5
)

// IntensityLabel names the tier an intensity falls into.
func IntensityLabel(level int) string {
	switch {
	case level <= 2:
		return "Soft Roast"
	case level <= 5:
		return "Medium Roast"
	case level <= 8:
		return "Full Roast"
	default:
		return "No Mercy! 🔥"
	}
}

type ScoreBand string

const (
	ScoreBandGood ScoreBand = "good"
	ScoreBandMeh  ScoreBand = "meh"
	ScoreBandBad  ScoreBand = "bad"
)

func ScoreBandFor(score int) ScoreBand {
	switch {
	case score >= 75:
		return ScoreBandGood
	case score >= 40:
		return ScoreBandMeh
	default:
		return ScoreBandBad
	}
}
