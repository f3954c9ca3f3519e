package domain

// Word is a single dictionary entry. It carries no structure of its own;
// uniqueness is enforced by the target store on the word itself.
type Word string

func (w Word) String() string {
	return string(w)
}

// WordRow is the wire shape of a word row as accepted by the REST endpoint.
type WordRow struct {
	Word string `json:"word"`
}

func ToRows(words []Word) []WordRow {
	rows := make([]WordRow, len(words))
	for i, w := range words {
		rows[i] = WordRow{Word: string(w)}
	}
	return rows
}

func ToStrings(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = string(w)
	}
	return out
}

func FromStrings(values []string) []Word {
	out := make([]Word, len(values))
	for i, v := range values {
		out[i] = Word(v)
	}
	return out
}
