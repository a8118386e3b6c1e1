// Package api handles incoming HTTP requests, request validation and response
// formatting for users and their onboarding questionnaires. It acts as an
// adapter between external clients and the store repositories, translating
// HTTP concerns to repository operations and typed store errors back to
// status codes.
package api
