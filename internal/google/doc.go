// Package google wires the installed-app OAuth flow for Google Calendar.
// Tokens are kept in the local SQLite database and refreshed tokens are
// written back as they are issued.
package google
