package schema

// BlogPostTable represents the 'blog.post' table
type BlogPostTable struct {
	Table     string
	ID        string
	AuthorID  string
	Text      string
	PubDate   string
	UpdatedAt string
}

// BlogPost is the schema definition for blog.post
var BlogPost = BlogPostTable{
	Table:     "blog.post",
	ID:        "id",
	AuthorID:  "authorid",
	Text:      "text",
	PubDate:   "pubdate",
	UpdatedAt: "updatedat",
}

func (t BlogPostTable) Columns() []string {
	return []string{t.ID, t.AuthorID, t.Text, t.PubDate, t.UpdatedAt}
}

// BlogCommentTable represents the 'blog.comment' table
type BlogCommentTable struct {
	Table     string
	ID        string
	PostID    string
	AuthorID  string
	Text      string
	CreatedAt string
	UpdatedAt string
}

// BlogComment is the schema definition for blog.comment
var BlogComment = BlogCommentTable{
	Table:     "blog.comment",
	ID:        "id",
	PostID:    "postid",
	AuthorID:  "authorid",
	Text:      "text",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t BlogCommentTable) Columns() []string {
	return []string{t.ID, t.PostID, t.AuthorID, t.Text, t.CreatedAt, t.UpdatedAt}
}
