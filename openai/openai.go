// Package openai implements [passage.Completer] for OpenAI-compatible chat
// completion servers (OpenAI, LM Studio, Ollama, llama.cpp, OpenRouter).
//
// Each call sends a single user message to {baseURL}/chat/completions and
// returns the content of the first choice.
package openai

const completionsPath = "/chat/completions"

// apiRequest is the JSON body sent to the chat completions endpoint.
type apiRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiResponse is the subset of the completion response that is read.
// Content is a pointer so a missing field can be told apart from an empty
// answer.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// apiErrorResponse is the JSON body commonly returned on non-2xx responses.
type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
