// Package gemini implements [passage.Completer] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. One SDK client is kept per
// distinct base URL and API key pair seen in requests.
package gemini
