package api

// GenerateRequest is the body of POST /v1/generate. Pointer fields
// distinguish "absent, use the default" from an explicit zero: a request
// carrying max_new_tokens 0 asks for an empty continuation and gets one.
type GenerateRequest struct {
	Prompt       string   `json:"prompt"`
	MaxNewTokens *int     `json:"max_new_tokens,omitempty"`
	TopK         *int     `json:"top_k,omitempty"`
	Temperature  *float64 `json:"temperature,omitempty"`
	Confidence   *float64 `json:"confidence,omitempty"`
	Seed         *int64   `json:"seed,omitempty"`
}

type GenerateResponse struct {
	ID           string `json:"id"`
	Object       string `json:"object"`
	CreatedAt    int64  `json:"created_at"`
	Prompt       string `json:"prompt"`
	Text         string `json:"text"`
	Reason       string `json:"reason"`
	PromptTokens int    `json:"prompt_tokens"`
	Tokens       int    `json:"tokens"`
	Steps        int    `json:"steps"`
	DurationMS   int64  `json:"duration_ms"`
}

// SuggestRequest is the body of POST /v1/suggest.
type SuggestRequest struct {
	Text string `json:"text"`
	K    *int   `json:"k,omitempty"`
}

type SuggestResponse struct {
	ID        string   `json:"id"`
	Object    string   `json:"object"`
	CreatedAt int64    `json:"created_at"`
	Text      string   `json:"text"`
	Words     []string `json:"words"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Vocab   int    `json:"vocab"`
}

type ResponseError struct {
	Message string `json:"message,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
}
