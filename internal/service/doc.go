// Package service contains the use cases of the terminal auth service.
//
// AuthService registers users and returns their exchange credentials on
// login; VersionService answers client version checks. Services receive
// their dependencies through constructors and return the sentinel errors in
// errors.go, which the API layer maps to HTTP status codes.
package service
