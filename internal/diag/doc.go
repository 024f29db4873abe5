// Package diag defines the diagnostic model shared by the lexer, the parser
// and the normalizer.
//
// Producers report through a Reporter so that they stay independent of
// storage and formatting; BagReporter collects into a bounded Bag, and
// internal/diagfmt renders a Bag for people (pretty) or tools (json).
//
// Diagnostic is data only: severity, a numeric Code with a stable string ID
// (LEX1001, SYN2003, NRM4001), a message, a primary span and optional notes.
// Notes must add context ("region declared here"), not repeat the message.
package diag
