package model

import "time"

type Comment struct {
	ID         string     `json:"id" firestore:"-"`
	QuestionID string     `json:"questionId" firestore:"questionId"`
	Author     string     `json:"author" firestore:"author"`
	Writer     string     `json:"writer" firestore:"writer"`
	Content    string     `json:"content" firestore:"content"`
	CreatedAt  time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt"`
}

type NewComment struct {
	QuestionID string `json:"-"`
	Author     string `json:"-"`
	Writer     string `json:"-"`
	Content    string `json:"content"`
}
