// Package translate resolves missing translations for dictation word
// lists. It supports the free Google Translate endpoint plus OpenAI
// and Gemini chat models, and can persist results in a SQLite store
// across runs.
package translate
