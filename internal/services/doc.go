// Package services implements the business logic layer of the decomposition
// application. It provides a clean separation between HTTP handlers and the
// core analysis code, ensuring that business rules are centralized and
// testable.
//
// # Architecture
//
// Services follow these architectural principles:
//
//	1. Interface-driven design for testability
//	2. Context propagation for cancellation and tracing
//	3. Dependency injection for loose coupling
//	4. Error transformation from core errors to API errors
//
// # Service Layer Responsibilities
//
// The service layer is responsible for:
//
//	- Request validation
//	- Mapping API contracts onto core panel types
//	- Running decomposition analyses
//	- Error handling and transformation
//	- Cross-cutting concerns (logging, metrics)
package services
