/*
Package spade is a dependency-ensuring command runner: it guarantees that a
prerequisite tool is present on the host before invoking a command that
depends on it, and executes external commands synchronously while surfacing
their outcome.

It grew out of a maintenance action buried in a larger toolset ("reinstall
winget via Chocolatey") and keeps that shape: small imperative actions, run
once, no retries, every failure propagated to the caller unchanged.

# Concept

Spade separates three capabilities behind ports (Hexagonal Architecture):

  - PathResolver answers "is this tool resolvable on the execution path?"
  - PrerequisiteEnsurer installs a missing tool via its platform recipe and
    re-verifies, guarded by an advisory lock against concurrent duplicates.
  - CommandRunner executes one external process to completion, attached to
    the current console, reporting the exit code.

The Toolkit facade wires them together with sane defaults (real PATH lookup,
os/exec runner, in-process lock) while tests and embedders can inject fakes.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/spade"
	)

	func main() {
		tk := spade.New()

		// The built-in "winget" fix: ensure choco, then reinstall winget.
		if err := tk.Fix(context.Background(), "winget"); err != nil {
			log.Fatal(err)
		}
	}
*/
package spade
