// Package colosseum implement an in-memory registry of trainers and
// their gladiators, indexed three ways:
//
//   * every gladiator by identifier, remembering its trainer.
//   * every gladiator by {level, identifier}.
//   * per trainer, its gladiators by {level, identifier}.
//
// All three indexes are LLRB trees drawing nodes from a single memory
// arena owned by the registry. Every operation checks its arguments,
// then the registry state, then the arena budget, before touching any
// index, so that a failed operation leaves no trace. A gladiator's
// level is part of two index keys, hence a level change or a rename is
// always a full remove followed by a fresh insert on all three indexes.
//
// Registry instances are not thread safe.
package colosseum
