/*
Package mystem drives a long-lived mystem morphological analyzer process and
decodes its answers into typed lemmas, parts of speech and grammatical facts.

# Concept

The worker is started once and spoken to over a line protocol: one sanitized
line of text in, one JSON line out. The Analyzer restarts a worker that died
between calls, so a crash costs latency, not an error. Every candidate's tag
string (for example "S,persn,famn=nom,sg") is decoded by package grammem into a
PartOfSpeech and an ordered list of Facts.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/mystem"
	)

	func main() {
		an, err := mystem.New()
		if err != nil {
			log.Fatal(err)
		}
		defer an.Terminate()

		tokens, err := an.Stemming(context.Background(), "Связался с лучшим - подохни как все.")
		if err != nil {
			log.Fatal(err)
		}
		for _, tok := range tokens {
			if best, ok := tok.Best(); ok {
				fmt.Println(tok.Text, best.Lemma, best.Grammem.PartOfSpeech)
			}
		}
	}

# Failure policy

Unknown tag codes abort the whole call by default (grammem.PolicyStrict).
WithPolicy(grammem.PolicyIsolate) keeps the rest of the response: unknown
facts become grammem.Unknown markers and candidates whose part of speech is
unknown are dropped.

# Adapters

  - HTTP: pkg/adapters/http serves POST /stemming.
  - MCP: pkg/adapters/mcp exposes a "stemming" tool over stdio.
  - Cache: pkg/adapters/memory and pkg/adapters/redis implement ports.ResponseCache.
*/
package mystem
