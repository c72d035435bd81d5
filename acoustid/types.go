package acoustid

// Error is the error object the service attaches to rejected requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// LookupResponse is the reply to a fingerprint or track id lookup.
type LookupResponse struct {
	Status  string   `json:"status"`
	Results []Result `json:"results"`
}

// Result is one scored AcoustID track match.
type Result struct {
	ID         string      `json:"id"`
	Score      float64     `json:"score"`
	Recordings []Recording `json:"recordings"`
}

// Recording is a MusicBrainz recording attached to a match.
type Recording struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Duration      int            `json:"duration"`
	Artists       []Artist       `json:"artists"`
	ReleaseGroups []ReleaseGroup `json:"releasegroups"`
}

type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReleaseGroup struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// SubmitResponse is the reply to a submit or submission_status request.
type SubmitResponse struct {
	Status      string             `json:"status"`
	Submissions []SubmissionStatus `json:"submissions"`
}

// SubmissionStatus tracks one submitted fingerprint through import.
type SubmissionStatus struct {
	ID     int    `json:"id"`
	Status string `json:"status"` // "pending" or "imported"
	Result *struct {
		ID string `json:"id"`
	} `json:"result"`
}

// TrackListResponse is the reply to a track/list_by_mbid request.
type TrackListResponse struct {
	Status string `json:"status"`
	Tracks []struct {
		ID string `json:"id"`
	} `json:"tracks"`
}
