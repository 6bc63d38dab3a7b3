// Package http implements HTTP request handlers for the decomposition
// web service. It provides a thin layer between HTTP transport and
// business logic, following the clean architecture principle of keeping
// handlers focused solely on HTTP concerns.
//
// # Architecture Principles
//
// Handlers in this package follow these principles:
//
//	1. Thin handlers - minimal logic, delegate to services
//	2. HTTP-only concerns - request parsing, response formatting
//	3. Error transformation - convert service errors to HTTP responses
//	4. No business logic - all logic belongs in the service layer
//
// # Request Flow
//
// A typical request flows through these layers:
//
//	HTTP Request -> Chi Router -> Middleware -> Handler -> Service -> Core
//	                                              ↓
//	HTTP Response ← Handler ← Service Response ←─┘
//
// # Testing
//
// Handlers are tested using httptest:
//
//	- Test various HTTP scenarios
//	- Verify error responses
//	- Check status code mapping
package http
