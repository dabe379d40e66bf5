// Package store defines the persistence capability interfaces the scheduling
// engine's collaborators are written against, together with their sentinel
// errors. The engine itself never performs I/O; everything that loads or
// saves a card or its scheduling record goes through these interfaces, so
// the pure core never depends on a concrete storage type.
package store
