// Package chat routes conversational prompts to the right handler.
//
// A prompt is first classified into one of five intents (general,
// similarity, analytics, refinement, compilation) by a JSON-mode model
// call; anything the classifier cannot produce cleanly falls back to
// general chat rather than surfacing an error. The Router then dispatches
// the prompt to the intent's handler and persists both sides of the
// exchange in the conversation history.
//
// Chat generation is never retried. A failed backend call degrades to a
// fixed apology string so the session always gets an answer.
package chat
