package api

import "errors"

// ErrorInvalidInput operation cannot succeed because one or more
// arguments violate their domain constraints, like a non-positive
// identifier or level.
var ErrorInvalidInput = errors.New("invalidInput")

// ErrorKeyMissing operation cannot succeed because specified key is
// missing in the index.
var ErrorKeyMissing = errors.New("keyMissing")

// ErrorKeyExists operation cannot succeed because specified key is
// already present in the index.
var ErrorKeyExists = errors.New("keyExists")

// ErrorTrainerMissing trainer is not registered.
var ErrorTrainerMissing = errors.New("trainerMissing")

// ErrorTrainerExists trainer is already registered.
var ErrorTrainerExists = errors.New("trainerExists")

// ErrorGladiatorMissing gladiator is not indexed.
var ErrorGladiatorMissing = errors.New("gladiatorMissing")

// ErrorGladiatorExists gladiator is already indexed.
var ErrorGladiatorExists = errors.New("gladiatorExists")

// ErrorSameIdentifier upgrade asked to re-key a gladiator onto its
// own identifier.
var ErrorSameIdentifier = errors.New("sameIdentifier")

// ErrorEmptyIndex query needs at least one entry in the index.
var ErrorEmptyIndex = errors.New("emptyIndex")

// ErrorOutofMemory memory arena cannot supply the requested size.
var ErrorOutofMemory = errors.New("outofMemory")
