// Package models defines domain entities and persistence interfaces for the umx user migration tool.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing export-file data
//   - [UserRecord] : A user from the primary export with identity, credentials, and phone numbers
//   - [PhoneRecord] : An auxiliary phone-number row joined into UserRecord by ID
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Run] : One migration or cleanup invocation with status, offset, and outcome counters
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
//
// [PasswordHasher] is the closed enumeration of digest algorithms the identity
// provider accepts for pre-hashed credentials.
package models
