// Package openai implements the ai.Answerer interface against
// OpenAI-compatible chat completion APIs (OpenAI, Ollama, LocalAI,
// vLLM) using langchaingo.
package openai
