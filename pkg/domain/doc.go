// Package domain contains the core value types of Spade: command
// specifications, run outcomes, tool registry entries and the error taxonomy.
// It has no dependencies on adapters so every layer can share it.
package domain
