// Package locqa answers natural language questions against a fixed corpus of
// precomputed passages. It retrieves the passage whose embedding is closest to
// the question's embedding and localizes the answer span inside it.
//
// This package contains domain types, interfaces and the pure retrieval and
// span algorithms, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., sqlite/, gemini/, ollama/).
package locqa
