package catalog

// Sentiment is the polarity label attached to a review.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

// Product is one catalog entry. Records are immutable after load.
type Product struct {
	ID                string  `json:"productId"`
	Name              string  `json:"name"`
	Brand             string  `json:"brand"`
	PrimaryCategory   string  `json:"primaryCategory"`
	SecondaryCategory string  `json:"secondaryCategory,omitempty"`
	PriceUSD          float64 `json:"priceUsd,omitempty"`
	Rating            float64 `json:"rating,omitempty"`
}

// Review is one customer review. Every review references exactly one product.
type Review struct {
	ID          string    `json:"reviewId"`
	ProductID   string    `json:"productId"`
	Body        string    `json:"body"`
	Rating      int       `json:"rating,omitempty"`
	Sentiment   Sentiment `json:"sentiment"`
	SourceSite  string    `json:"sourceSite,omitempty"`
	ConcernTags []string  `json:"concernTags,omitempty"`
}

// Dataset is the fully loaded catalog.
type Dataset struct {
	Products []Product
	Reviews  []Review
}

// Positive reports whether the review counts toward recommendations.
func (r Review) Positive() bool {
	return r.Sentiment == SentimentPositive
}
