package vocab

// File defaults.go populates a Registry with the engine's built-in word set.
// Game content extends this with object words via AddObjectWords.

// NewDefaultRegistry creates a Registry pre-loaded with the engine's verbs,
// prepositions, directions, and buzz-words.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.AddVerb(VerbWalk, "WALK", "GO", "RUN", "PROCEED")
	r.AddVerb(VerbTake, "TAKE", "GET", "GRAB", "CARRY", "HOLD")
	r.AddVerb(VerbDrop, "DROP", "RELEASE")
	r.AddVerb(VerbPut, "PUT", "PLACE", "INSERT", "STUFF")
	r.AddVerb(VerbOpen, "OPEN")
	r.AddVerb(VerbClose, "CLOSE", "SHUT")
	r.AddVerb(VerbLook, "LOOK", "L", "GAZE", "STARE")
	r.AddVerb(VerbExamine, "EXAMINE", "X", "DESCRIBE", "INSPECT")
	r.AddVerb(VerbRead, "READ", "SKIM")
	r.AddVerb(VerbInventory, "INVENTORY", "INVEN", "I")
	r.AddVerb(VerbLight, "LIGHT", "ACTIVATE")
	r.AddVerb(VerbDouse, "DOUSE", "EXTINGUISH", "DEACTIVATE")
	r.AddVerb(VerbAttack, "ATTACK", "KILL", "FIGHT", "HIT", "STRIKE")
	r.AddVerb(VerbSay, "SAY", "SHOUT", "YELL", "SPEAK")
	r.AddVerb(VerbWait, "WAIT", "Z")
	r.AddVerb(VerbScore, "SCORE")
	r.AddVerb(VerbHelp, "HELP")
	r.AddVerb(VerbQuit, "QUIT", "BYE")
	r.AddVerb(VerbAgain, "AGAIN", "G")
	r.AddVerb(VerbOops, "OOPS")

	r.AddPrep(PrepIn, "IN", "INSIDE", "INTO")
	r.AddPrep(PrepOn, "ON", "ONTO")
	r.AddPrep(PrepFrom, "FROM")
	r.AddPrep(PrepWith, "WITH", "USING")
	r.AddPrep(PrepTo, "TO")
	r.AddPrep(PrepUnder, "UNDER", "UNDERNEATH", "BENEATH")
	r.AddPrep(PrepAt, "AT")
	r.AddPrep(PrepOf, "OF")

	for name, dir := range DirectionsByString {
		r.AddDirection(dir, name)
	}

	r.AddBuzz("THE", "A", "AN", "SOME", "THIS", "THAT")

	// quantifiers, the pronoun, and the sentence separator, all of which the
	// pipeline handles by word rather than by role
	r.AddBareNoun("ALL", "EVERYTHING", "ONE", "IT")
	r.AddBuzz("THEN")

	return r
}
