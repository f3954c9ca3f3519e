package es

import (
	"github.com/DjordjeVuckovic/word-importer/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

// WordDocument is stored under the word itself as document id.
type WordDocument struct {
	Word string `json:"word"`
}

func toDocument(w domain.Word) WordDocument {
	return WordDocument{Word: w.String()}
}

func buildSettings() types.IndexSettings {
	return types.IndexSettings{}
}

func buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"word": types.NewKeywordProperty(),
		},
	}
}
