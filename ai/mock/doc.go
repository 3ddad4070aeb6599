// Package mock provides test doubles for the ai interfaces.
//
// The mocks allow custom behavior injection via function fields and
// track call counts for test assertions. They are also usable as
// offline stand-ins when no model endpoint is available.
package mock
