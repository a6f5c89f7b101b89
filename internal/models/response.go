package models

type RoastResponse struct {
	AttemptID      string       `json:"attemptId"`
	Intensity      int          `json:"intensity"`
	IntensityLabel string       `json:"intensityLabel"`
	ScoreBand      ScoreBand    `json:"scoreBand"`
	Result         *RoastResult `json:"result"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	AttemptID string `json:"attemptId,omitempty"`
}
