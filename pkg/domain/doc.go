/*
Package domain contains the core domain models and business rules for the Casefile engine.

It defines the immutable investigation content, the mutable Session record and the closed
set of states a Session moves through. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Podcast, MajorBranch, MinorBranch, Accusation: read-only narrative content.
  - Session: the per-run progress record (selections, current state, current major branch).
  - State: one of the nine states of an investigation. Edges lists the only legal moves.
  - Error: a typed rejection (NotFound, OwnershipMismatch, InvalidState, QuotaExceeded, DuplicateSelection).

# Quota Rules

A listener may pick floor(total/2) major branches per podcast and exactly two minor
branches inside each chosen major branch. The helpers in quota.go are pure so they can be
exercised without any store.
*/
package domain
