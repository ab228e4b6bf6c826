// Package openai implements the generation.Generator interface against a
// bearer-authenticated chat-completion HTTP endpoint. The service is asked to
// answer with a JSON object carrying parallel content and solutions arrays;
// anything else is reported as a malformed response. The client makes exactly
// one attempt per invocation and never retries.
package openai
