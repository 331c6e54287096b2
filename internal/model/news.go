// Package model defines the data structures used throughout the application.
//
// The JSON tags match the column names of the relational store, so a row
// scanned into a struct is written to the client without renaming.
package model

import "time"

// Topic groups articles. The slug is its identifying key.
type Topic struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Article is a news item. Votes is a signed accumulator and may go negative.
type Article struct {
	ArticleID int64     `json:"article_id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Votes     int       `json:"votes"`
}

// ArticleSummary is an Article as listed, with the number of comments
// counted at read time. Articles without comments report 0.
type ArticleSummary struct {
	Article
	CommentCount int `json:"comment_count"`
}

// Comment belongs to exactly one article. Comments are never edited;
// deleting one removes the row.
type Comment struct {
	CommentID int64     `json:"comment_id"`
	ArticleID int64     `json:"article_id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}
