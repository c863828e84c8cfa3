// Package logger is a standardized event logging framework for the shell.
//
// Events are google.protobuf.Struct messages written as newline delimited
// JSON. Every entry carries a type, a session ID and a timestamp, the
// remaining fields depend on the type.
package logger
