// Package domain contains the Cruddur entities and the rules that apply to
// them before anything reaches the database: activity lifetimes, message
// limits and the error codes reported back to the client.
package domain
