package models

// ChatRequest carries a user message for the assistant along with an optional
// serialized slice of sales data the model should ground its answer in.
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
