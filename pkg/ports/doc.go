/*
Package ports defines the driven ports (interfaces) for the Spade toolkit.

These interfaces decouple the core logic from external implementations,
allowing the toolkit to work with the real host environment or with
deterministic test doubles.

# Key Interfaces

  - PathResolver: Locates executables via the host's standard search mechanism.
  - CommandRunner: Executes one external command synchronously.
  - PrerequisiteEnsurer: Guarantees a tool is invocable before dependent actions run.
  - InstallLocker: Serializes check-then-act install sequences across callers.
*/
package ports
