// Package webretriever answers questions about documentation sites.
// It fetches documentation pages, strips boilerplate text shared by every
// page, embeds the remaining chunks into a vector index and answers
// questions by retrieving relevant chunks and asking several hosted
// language models in parallel.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, langchaingo/).
package webretriever
