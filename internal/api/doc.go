// Package api handles incoming HTTP requests for the Cruddur backend. It
// decodes and validates requests, calls the activity services, and writes
// JSON responses. Data-access errors are translated to status codes here so
// that internal details never reach clients.
package api
