package response_models

// Hotel is a lodging recommendation refined from a Google Places result.
type Hotel struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Rating     float64  `json:"rating"`
	Reviews    int      `json:"reviews"`
	PriceLevel int      `json:"price_level,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Latitude   float64  `json:"lat,omitempty"`
	Longitude  float64  `json:"lng,omitempty"`
	Type       string   `json:"type"` // 호텔 | 리조트 | 한옥스테이 | 게스트하우스 | 모텔 | 기타 숙소
	Images     []string `json:"images,omitempty"`
}

type Restaurant struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Rating     float64  `json:"rating"`
	Reviews    int      `json:"reviews"`
	PriceLevel int      `json:"price_level,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Latitude   float64  `json:"lat,omitempty"`
	Longitude  float64  `json:"lng,omitempty"`
	Images     []string `json:"images,omitempty"`
}
