// Package services defines the [Sink] interface for the remote identity
// provider and its Clerk Backend API implementation.
//
// [ClerkService] is a thin, stateless HTTP client: every method is one
// authenticated round trip, and non-2xx responses surface as [*ClerkError]
// values carrying the HTTP status, the provider's structured error objects,
// and the Retry-After cooldown hint on 429s. Callers classify outcomes with
// [IsConflict] and [IsRateLimited] rather than inspecting status codes inline.
package services
