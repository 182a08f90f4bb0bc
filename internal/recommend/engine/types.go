package engine

// Product is the minimal product representation the engine ranks.
type Product struct {
	ID          string
	Name        string
	Brand       string
	Category    string
	Subcategory string
	PriceUSD    float64
	Rating      float64
}

// Review is the minimal review representation the engine filters.
type Review struct {
	ProductID string
	Positive  bool
	Rating    int
	Tags      []string
	Body      string
}

// Query captures one search request after validation.
type Query struct {
	Term     string
	Concerns []string
	Category string
	Brand    string
	PriceMin float64
	PriceMax float64
	Limit    int
}

// Result is one ranked recommendation.
type Result struct {
	Product         Product
	MatchingReviews int
	ReviewCount     int
	AvgRating       float64
	Score           float64
	Excerpts        []string
}

// TrendingQuery selects high-signal products independent of concerns.
type TrendingQuery struct {
	MinRating  float64
	MinReviews int
	Limit      int
}

// TrendingResult is one trending product with its score.
type TrendingResult struct {
	Product       Product
	ReviewCount   int
	AvgRating     float64
	PositiveShare float64
	Score         float64
}
