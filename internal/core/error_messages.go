// Package core error codes.
//
// # Error Codes Reference
//
// Every error shown to an API client or printed by the loader carries a
// code that can be quoted when reporting a problem.
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - A query parameter is not an integer
//	VAL002 - A query parameter is below its minimum (country >= 0, year >= 1900)
//	VAL003 - A query parameter is outside its allowed set (order_by)
//	VAL004 - A query parameter is above its maximum (country, year and id <= 2147483647)
//
// # Store Errors (STORE001-STORE099)
//
//	STORE001 - The database could not be reached or the query failed
//
// # Ingest Errors (ING001-ING099)
//
//	ING001 - Schema mismatch: the CSV row lacks a required column
//	ING002 - Data format: a value could not be converted
//	ING003 - Integrity: a fact row references an unknown country
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests from one client
//
// # Routing (HTTP404, HTTP405)
//
// Issued by the web layer for unknown paths and non-GET methods.
//
// # Default Error (ERR000)
//
// Fallback when nothing else matches. Check the logs for the technical error.
//
// # Matching
//
// Typed errors from this package are matched with errors.As first. Errors
// from other packages are matched by pattern: case-insensitive
// strings.Contains, first match wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var storeUnavailableMessage = UserMessage{
	Message: "The data store is unavailable",
	Action:  "Please try again in a few moments",
	Code:    "STORE001",
}

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. Specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "schema mismatch",
		msg: UserMessage{
			Message: "The CSV file does not have the expected columns",
			Action:  "Check that every row has all 26 columns in the documented order",
			Code:    "ING001",
		},
	},
	{
		pattern: "data format",
		msg: UserMessage{
			Message: "The CSV file contains a value that could not be read",
			Action:  "Fix the value at the reported line and column",
			Code:    "ING002",
		},
	},
	{
		pattern: "integrity",
		msg: UserMessage{
			Message: "A row references a country that was never registered",
			Action:  "Reset the database and load the file again",
			Code:    "ING003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{pattern: "store unavailable", msg: storeUnavailableMessage},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := core.ParseFilter(res, url.Values{"year": {"1850"}})
//	msg := core.MapError(err)
//	// msg.Code == "VAL002"
//	// msg.Message == "year must be greater than or equal to 1900"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return validationMessage(ve)
	}

	var su *StoreUnavailableError
	if errors.As(err, &su) {
		return storeUnavailableMessage
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

func validationMessage(ve *ValidationError) UserMessage {
	msg := UserMessage{Message: ve.Field + " " + ve.Message}
	switch ve.Reason {
	case ReasonNotInteger:
		msg.Code = "VAL001"
		msg.Action = "Pass a whole number for " + ve.Field
	case ReasonBelowMinimum:
		msg.Code = "VAL002"
		msg.Action = "Raise the value of " + ve.Field
	case ReasonAboveMaximum:
		msg.Code = "VAL004"
		msg.Action = "Lower the value of " + ve.Field
	default:
		msg.Code = "VAL003"
		msg.Action = "Use one of the documented values for " + ve.Field
	}
	return msg
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
