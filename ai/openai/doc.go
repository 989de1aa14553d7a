// Package openai implements the ai interfaces against any OpenAI-compatible
// API (OpenAI, Ollama, LocalAI, vLLM). One embedding client is created per
// modality so each modality can use a different model and dimension.
package openai
