/*
Package casefile is the session engine for interactive audio investigations.

A listener hears an introduction, explores a bounded number of investigative branches,
picks exactly two sub-branches inside each, and finally accuses a suspect. The Engine
owns that journey as an explicit state machine: every operation names its Session,
checks that the Session is in a state where the operation is legal, and persists the
result atomically. Rejected operations leave the Session untouched and return a typed
*domain.Error.

# Concept

Content (podcasts, branches, accusations) is read-only and supplied through a
ports.ContentStore. Sessions are persisted through a ports.SessionStore. Driving
adapters (HTTP, MCP, the terminal player) talk only to the Engine, which keeps the
Hexagonal boundary between the state machine and the outside world.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/casefile"
		"github.com/aretw0/casefile/pkg/adapters/memory"
	)

	func main() {
		eng, err := casefile.New(memory.SeedTestInvestigation())
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		s, err := eng.CreateSession(ctx, memory.TestPodcastID)
		if err != nil {
			log.Fatal(err)
		}

		// The intro audio finished playing.
		s, err = eng.Advance(ctx, s.ID, s.State)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("now in", s.State)
	}
*/
package casefile
