package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table     string
	ID        string
	TitleID   string
	AuthorID  string
	Text      string
	Score     string
	PubDate   string
	UpdatedAt string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:     "social.review",
	ID:        "id",
	TitleID:   "titleid",
	AuthorID:  "authorid",
	Text:      "text",
	Score:     "score",
	PubDate:   "pubdate",
	UpdatedAt: "updatedat",
}

// SocialReviewUniqueAuthorTitle is the constraint enforcing one review per
// author and title.
const SocialReviewUniqueAuthorTitle = "review_authorid_titleid_key"

func (t SocialReviewTable) Columns() []string {
	return []string{t.ID, t.TitleID, t.AuthorID, t.Text, t.Score, t.PubDate, t.UpdatedAt}
}

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table     string
	ID        string
	ReviewID  string
	AuthorID  string
	Text      string
	PubDate   string
	UpdatedAt string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:     "social.comment",
	ID:        "id",
	ReviewID:  "reviewid",
	AuthorID:  "authorid",
	Text:      "text",
	PubDate:   "pubdate",
	UpdatedAt: "updatedat",
}

func (t SocialCommentTable) Columns() []string {
	return []string{t.ID, t.ReviewID, t.AuthorID, t.Text, t.PubDate, t.UpdatedAt}
}
