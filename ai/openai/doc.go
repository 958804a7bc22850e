// Package openai implements the ai.Embedder interface against
// OpenAI-compatible embedding APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// The implementation uses langchaingo's OpenAI client and works with any
// service exposing the /v1/embeddings endpoint.
package openai
