// Package elephantlog extracts structured elephant incident records from
// news articles about five Central Indian states. It fetches each article in
// a researcher-curated URL list, normalizes its date, resolves its location
// against a gazetteer, extracts counts, classifies the incident, and writes
// one row per accepted article.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, trafilatura/, gemini/).
package elephantlog
