package alphabet

// EnglishLetterDistribution returns the English letters A..Z with the
// standard letter scores and counts (98 tiles); it holds no blank
// tiles. Grounded in GoSkrafl's bag.go initEnglishTileSet,
// extended with vowel flags since spec.md's LetterDistribution carries
// an IsVowel bit that GoSkrafl's TileSet does not track.
func EnglishLetterDistribution() *LetterDistribution {
	ld, err := NewLetterDistribution("english", []LetterInfo{
		{'A', 1, 9, true}, {'B', 3, 2, false}, {'C', 3, 2, false},
		{'D', 2, 4, false}, {'E', 1, 12, true}, {'F', 4, 2, false},
		{'G', 2, 3, false}, {'H', 4, 2, false}, {'I', 1, 9, true},
		{'J', 8, 1, false}, {'K', 5, 1, false}, {'L', 1, 4, false},
		{'M', 3, 2, false}, {'N', 1, 6, false}, {'O', 1, 8, true},
		{'P', 3, 2, false}, {'Q', 10, 1, false}, {'R', 1, 6, false},
		{'S', 1, 4, false}, {'T', 1, 6, false}, {'U', 1, 4, true},
		{'V', 4, 2, false}, {'W', 4, 2, false}, {'X', 8, 1, false},
		{'Y', 4, 2, false}, {'Z', 10, 1, false},
	})
	if err != nil {
		panic(err)
	}
	return ld
}
