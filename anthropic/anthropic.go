// Package anthropic implements [passage.Completer] for the Anthropic Messages
// API using the official SDK.
package anthropic

const defaultMaxTokens = 8192
