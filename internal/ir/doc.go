// Package ir holds the declaration model and the passes that turn
// loaded declarations into an emittable header: type expressions and
// paths, the Item contract with its seven declaration kinds, the
// dependency closure, the monomorph registry, the mangler and the
// conditional-compilation predicates.
//
// The collaborators here are mutually recursive (items consult the
// Library and feed the Monomorphs registry, which stores items), so
// they live in a single package.
package ir
