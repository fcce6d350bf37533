// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review manages reviews of titles and the comments under them.

Both live under their parent in the URL:

	/titles/{titleID}/reviews/{reviewID}/comments/{commentID}

Every lookup checks the whole chain, so a review reached through the wrong
title (or a comment through the wrong review) is reported as not found.

A user reviews a title at most once. Moderators, administrators and the
author may edit or delete a review or comment; everyone may read them.
*/
package review

import "time"

// Review is one user's score and opinion of a title.
type Review struct {
	ID      string `json:"id"`
	TitleID string `json:"-"`
	UserID  string `json:"-"`

	// Author is the author's username.
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`

	UpdatedAt time.Time `json:"-"`
}

// AuthorID satisfies access.Authored.
func (r *Review) AuthorID() string { return r.UserID }

// Comment is a reply to a review.
type Comment struct {
	ID       string `json:"id"`
	ReviewID string `json:"review"`
	TitleID  string `json:"title"`
	UserID   string `json:"-"`

	// Author is the author's username.
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`

	UpdatedAt time.Time `json:"-"`
}

// AuthorID satisfies access.Authored.
func (c *Comment) AuthorID() string { return c.UserID }

// # Field Identifiers

const (
	FieldText      = "text"
	FieldScore     = "score"
	FieldTitleID   = "titleID"
	FieldReviewID  = "reviewID"
	FieldCommentID = "commentID"
)

const (
	MinScore = 1
	MaxScore = 10
)

const (
	resourceReview  = "Review"
	resourceComment = "Comment"
)
