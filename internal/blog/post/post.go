// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post implements the blog: free-form posts and their comments.

Any active user may write. Only the author may edit or delete; staff roles
grant nothing extra here.
*/
package post

import "time"

// Post is a blog entry.
type Post struct {
	ID      string    `json:"id"`
	UserID  string    `json:"-"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`

	UpdatedAt time.Time `json:"-"`
}

// AuthorID satisfies access.Authored.
func (p *Post) AuthorID() string { return p.UserID }

// Comment is a reply to a post.
type Comment struct {
	ID      string    `json:"id"`
	PostID  string    `json:"post"`
	UserID  string    `json:"-"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`

	UpdatedAt time.Time `json:"-"`
}

// AuthorID satisfies access.Authored.
func (c *Comment) AuthorID() string { return c.UserID }

const (
	FieldText      = "text"
	FieldPostID    = "postID"
	FieldCommentID = "commentID"

	resourcePost    = "Post"
	resourceComment = "Comment"
)
