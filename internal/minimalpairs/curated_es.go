package minimalpairs

// curatedSeed holds the built-in curated minimal-pair lists, keyed by
// BCP-47 tag. Adapted (not transliterated) from the hand-authored Spanish
// contrast list this system was distilled from: same contrasts, idiomatic
// Go struct literals instead of Python dataclass calls.
var curatedSeed = map[string][]Pair{
	"es-mx": {
		{Word1: "pero", IPA1Tokens: []string{"p", "e", "ɾ", "o"}, Word2: "perro", IPA2Tokens: []string{"p", "e", "r", "o"}, Phoneme1: "ɾ", Phoneme2: "r", Position: 2, Difficulty: 3, Language: "es-mx", Tags: []string{"rhotic", "place"}},
		{Word1: "caro", IPA1Tokens: []string{"k", "a", "ɾ", "o"}, Word2: "carro", IPA2Tokens: []string{"k", "a", "r", "o"}, Phoneme1: "ɾ", Phoneme2: "r", Position: 2, Difficulty: 3, Language: "es-mx", Tags: []string{"rhotic", "coda"}},
		{Word1: "moro", IPA1Tokens: []string{"m", "o", "ɾ", "o"}, Word2: "morro", IPA2Tokens: []string{"m", "o", "r", "o"}, Phoneme1: "ɾ", Phoneme2: "r", Position: 2, Difficulty: 3, Language: "es-mx", Tags: []string{"rhotic"}},
		{Word1: "cero", IPA1Tokens: []string{"s", "e", "ɾ", "o"}, Word2: "cerro", IPA2Tokens: []string{"s", "e", "r", "o"}, Phoneme1: "ɾ", Phoneme2: "r", Position: 2, Difficulty: 3, Language: "es-mx", Tags: []string{"rhotic"}},
		{Word1: "para", IPA1Tokens: []string{"p", "a", "ɾ", "a"}, Word2: "parra", IPA2Tokens: []string{"p", "a", "r", "a"}, Phoneme1: "ɾ", Phoneme2: "r", Position: 2, Difficulty: 3, Language: "es-mx", Tags: []string{"rhotic"}},

		{Word1: "año", IPA1Tokens: []string{"a", "ɲ", "o"}, Word2: "ano", IPA2Tokens: []string{"a", "n", "o"}, Phoneme1: "ɲ", Phoneme2: "n", Position: 1, Difficulty: 2, Language: "es-mx", Tags: []string{"nasal", "place"}},
		{Word1: "soña", IPA1Tokens: []string{"s", "o", "ɲ", "a"}, Word2: "sona", IPA2Tokens: []string{"s", "o", "n", "a"}, Phoneme1: "ɲ", Phoneme2: "n", Position: 2, Difficulty: 2, Language: "es-mx", Tags: []string{"nasal", "place"}},
		{Word1: "ñoño", IPA1Tokens: []string{"ɲ", "o", "ɲ", "o"}, Word2: "nono", IPA2Tokens: []string{"n", "o", "n", "o"}, Phoneme1: "ɲ", Phoneme2: "n", Position: 0, Difficulty: 2, Language: "es-mx", Tags: []string{"nasal", "place"}},

		{Word1: "pata", IPA1Tokens: []string{"p", "a", "t", "a"}, Word2: "bata", IPA2Tokens: []string{"b", "a", "t", "a"}, Phoneme1: "p", Phoneme2: "b", Position: 0, Difficulty: 1, Language: "es-mx", Tags: []string{"stop", "voicing", "onset"}},
		{Word1: "poca", IPA1Tokens: []string{"p", "o", "k", "a"}, Word2: "boca", IPA2Tokens: []string{"b", "o", "k", "a"}, Phoneme1: "p", Phoneme2: "b", Position: 0, Difficulty: 1, Language: "es-mx", Tags: []string{"stop", "voicing"}},

		{Word1: "tío", IPA1Tokens: []string{"t", "i", "o"}, Word2: "dio", IPA2Tokens: []string{"d", "i", "o"}, Phoneme1: "t", Phoneme2: "d", Position: 0, Difficulty: 1, Language: "es-mx", Tags: []string{"stop", "voicing"}},
		{Word1: "toma", IPA1Tokens: []string{"t", "o", "m", "a"}, Word2: "doma", IPA2Tokens: []string{"d", "o", "m", "a"}, Phoneme1: "t", Phoneme2: "d", Position: 0, Difficulty: 1, Language: "es-mx", Tags: []string{"stop", "voicing"}},

		{Word1: "cama", IPA1Tokens: []string{"k", "a", "m", "a"}, Word2: "gama", IPA2Tokens: []string{"g", "a", "m", "a"}, Phoneme1: "k", Phoneme2: "g", Position: 0, Difficulty: 1, Language: "es-mx", Tags: []string{"stop", "voicing", "velar"}},
	},
}
