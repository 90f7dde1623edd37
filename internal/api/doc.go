// Package api handles incoming HTTP requests for the terminal auth service:
// registration and login under /auth, client version checks under /sec,
// and the health probe. Handlers decode and validate requests, call the
// services and translate service errors into status codes and safe messages.
package api
