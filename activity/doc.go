// Package activity provides default persistence helpers for the go-accountctl
// ActivitySink. The Repository implements both the sink (writes) and the
// ActivityRepository read-side contract so console workflows leave an audit
// trail that can be queried later. LogSink forwards records to a structured
// logger when no database is configured, and SanitizedSink masks sensitive
// payload fields before any sink sees them.
package activity
