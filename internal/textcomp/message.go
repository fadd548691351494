package textcomp

// MessageGenerator builds the disconnect text component shown to a client
// once its token has been minted. Implementations may swap in branding,
// translations, or a different layout entirely; ServerConfig holds whichever
// one is configured.
type MessageGenerator interface {
	Message(displayToken string) Component
}

// DefaultMessageGenerator reproduces the three-part coloured message the
// reference implementation sends: a plain label, the token itself picked out
// in green, and a dim footer line.
type DefaultMessageGenerator struct{}

func (DefaultMessageGenerator) Message(displayToken string) Component {
	return List(
		Compound(F("text", "Token: ")),
		Compound(F("text", displayToken), F("color", "#36bf5a")),
		Compound(F("text", "\n\nUse this to link your\nminecraft account"), F("color", "#919191")),
	)
}
