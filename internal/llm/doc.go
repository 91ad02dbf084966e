// Package llm classifies images through an OpenAI-compatible vision model.
// It supports a free-text mode, where the answer is matched by name, and a
// structured mode, where the model must choose from the registered category
// names through a JSON schema enum. Requests are optionally rate limited and
// never retried.
package llm
