package view

import "strings"

// Messages holds the user-facing strings for one locale.
// Failure messages are deliberately generic; causes are only logged.
type Messages struct {
	HeroFailed            string `json:"hero_failed"`
	CreditsFailed         string `json:"credits_failed"`
	MetadataFailed        string `json:"metadata_failed"`
	RecommendationsFailed string `json:"recommendations_failed"`
	GridFailed            string `json:"grid_failed"`
	SearchFailed          string `json:"search_failed"`
	NotFound              string `json:"not_found"`
	UnknownCategory       string `json:"unknown_category"`
	InvalidRequest        string `json:"invalid_request"`
	NoResults             string `json:"no_results"`
	NoRecommendations     string `json:"no_recommendations"`
	NoData                string `json:"no_data"`
	HourSuffix            string `json:"hour_suffix"`
}

var indonesian = Messages{
	HeroFailed:            "Gagal memuat data film",
	CreditsFailed:         "Gagal memuat data pemain dan kru",
	MetadataFailed:        "Gagal memuat informasi film",
	RecommendationsFailed: "Gagal memuat rekomendasi film",
	GridFailed:            "Gagal memuat daftar film",
	SearchFailed:          "Gagal mencari film",
	NotFound:              "Film tidak ditemukan",
	UnknownCategory:       "Kategori tidak ditemukan",
	InvalidRequest:        "Permintaan tidak valid",
	NoResults:             "Tidak ada film yang ditemukan",
	NoRecommendations:     "Tidak ada rekomendasi film saat ini.",
	NoData:                "Tidak ada data",
	HourSuffix:            "j",
}

var english = Messages{
	HeroFailed:            "Failed to load title",
	CreditsFailed:         "Failed to load cast and crew",
	MetadataFailed:        "Failed to load title information",
	RecommendationsFailed: "Failed to load recommendations",
	GridFailed:            "Failed to load titles",
	SearchFailed:          "Search failed",
	NotFound:              "Title not found",
	UnknownCategory:       "Category not found",
	InvalidRequest:        "Invalid request",
	NoResults:             "No titles found",
	NoRecommendations:     "No recommendations right now.",
	NoData:                "No data",
	HourSuffix:            "h",
}

// MessagesFor picks the message set for a language tag such as "id-ID" or "en-US".
// Unknown languages fall back to English.
func MessagesFor(lang string) Messages {
	if strings.HasPrefix(strings.ToLower(lang), "id") {
		return indonesian
	}
	return english
}
