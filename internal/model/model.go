// Package model contains domain models/data structures.
// Persistence tags (bson) live alongside JSON tags; MongoDB documents map
// directly to these structs.
package model
