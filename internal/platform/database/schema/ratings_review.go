package schema

// ReviewTable represents the 'ratings.review' table
type ReviewTable struct {
	Table    string
	ID       string
	TitleID  string
	AuthorID string
	Text     string
	Score    string
	PubDate  string

	// UniqueAuthorTitle is the constraint enforcing one review
	// per (title, author) pair.
	UniqueAuthorTitle string
}

// Review is the schema definition for ratings.review
var Review = ReviewTable{
	Table:    "ratings.review",
	ID:       "id",
	TitleID:  "title_id",
	AuthorID: "author_id",
	Text:     "text",
	Score:    "score",
	PubDate:  "pub_date",

	UniqueAuthorTitle: "review_title_author_key",
}
