package main

// TemplatePayload carries a template either as a minutia list or as the
// base64 form of sourceafis.Template.Serialize. Serialized wins when both
// are set.
type TemplatePayload struct {
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	Minutiae   []MinutiaPayload `json:"minutiae"`
	Serialized string           `json:"serialized,omitempty"`
}

type MinutiaPayload struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Direction float64 `json:"direction"`
	Type      string  `json:"type"`
}

type CompareFingerprintRequest struct {
	Probe     *TemplatePayload `json:"probe"`
	Candidate *TemplatePayload `json:"candidate"`
}

type CompareFingerprintResponse struct {
	Score      float64 `json:"score"`
	Match      bool    `json:"is_match"`
	Confidence string  `json:"confidence"`
	Elapsed    string  `json:"elapsed"`
	Message    string  `json:"message,omitempty"`
}

type EnrollRequest struct {
	ID       string           `json:"id"`
	Template *TemplatePayload `json:"template"`
}

type EnrollResponse struct {
	ID         string `json:"id"`
	Serialized string `json:"serialized"`
}

type IdentifyRequest struct {
	Probe *TemplatePayload `json:"probe"`
	Limit int              `json:"limit"`
}

type IdentifyResponse struct {
	Matches  []IdentifyMatch `json:"matches"`
	Searched int             `json:"searched"`
	Elapsed  string          `json:"elapsed"`
}

type IdentifyMatch struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
	Match bool    `json:"is_match"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
