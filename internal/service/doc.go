// Package service contains the application use cases. Services receive the
// database gateway and the SQL template loader through constructor
// injection, load the template for each operation and hand the JSON the
// database produced straight back to the caller.
//
// Key components:
//
//   - ActivityService: create, show and list activities, count per handle
//   - NotificationsService: the notifications feed
//
// Services never import the postgres package; they depend on the
// store.Gateway and store.TemplateLoader interfaces only.
package service
