package token

// smallCaps maps each uppercase letter to its small-capital Unicode
// homoglyph, so a redeemed token can be shown on-screen in a distinct style
// from the surrounding message text without changing the characters a
// player would actually type into the redeeming app.
var smallCaps = map[rune]rune{
	'A': 'ᴀ', 'B': 'ʙ', 'C': 'ᴄ', 'D': 'ᴅ', 'E': 'ᴇ', 'F': 'ꜰ', 'G': 'ɢ',
	'H': 'ʜ', 'I': 'ɪ', 'J': 'ᴊ', 'K': 'ᴋ', 'L': 'ʟ', 'M': 'ᴍ', 'N': 'ɴ',
	'O': 'ᴏ', 'P': 'ᴘ', 'Q': 'ǫ', 'R': 'ʀ', 'S': 'ꜱ', 'T': 'ᴛ', 'U': 'ᴜ',
	'V': 'ᴠ', 'W': 'ᴡ', 'X': 'x', 'Y': 'ʏ', 'Z': 'ᴢ',
}

// Display renders t using its small-caps homoglyphs: the form actually shown
// in the disconnect message, kept distinct from t's own string value so
// redemption always compares the plain A-Z form.
func (t Token) Display() string {
	out := make([]rune, 0, len(t))
	for _, r := range string(t) {
		if mapped, ok := smallCaps[r]; ok {
			out = append(out, mapped)
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
