// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillboard Contributors

// Package account provides account management for Quillboard: registration,
// login, cookie-session identity, and account CRUD.
//
// # Domain Types
//
// Account is the persistent entity; Session is the ephemeral binding
// between a client-held token and an optional account ID. Result is the
// response envelope used by operations that report expected failures
// (validation, conflicts, bad credentials) as FieldError values instead
// of Go errors.
//
// # Collaborators
//
// Persistence and session state live behind the Repository and
// SessionStore interfaces; see the postgres and redis subpackages for the
// production implementations. Password hashing is behind PasswordHasher,
// implemented by Argon2idHasher.
package account
