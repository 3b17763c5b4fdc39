package model

import "time"

// CodeLanguages is the fixed set of languages a question may be tagged
// with, matching the judge's language names.
var CodeLanguages = []string{
	"C++17", "Python 3", "PyPy3", "C99", "Java 11", "Ruby", "Kotlin (JVM)",
	"Swift", "Text", "C#", "node.js", "Go", "D", "Rust 2018", "C++17 (Clang)",
}

func IsValidCodeLanguage(lang string) bool {
	for _, l := range CodeLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

type Question struct {
	ID            string    `json:"id" firestore:"-"`
	ProblemNumber int       `json:"p_num" firestore:"p_num"`
	Title         string    `json:"title" firestore:"title"`
	Content       string    `json:"content" firestore:"content"`
	CodeLanguage  string    `json:"codeLanguage" firestore:"codeLanguage"`
	Codespace     *string   `json:"codespace" firestore:"codespace"`
	Author        string    `json:"author" firestore:"author"`
	Writer        string    `json:"writer" firestore:"writer"`
	Solved        bool      `json:"solved" firestore:"solved"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
}

// QuestionSummary is the board-listing projection of a question.
type QuestionSummary struct {
	ID            string    `json:"id" firestore:"-"`
	ProblemNumber int       `json:"p_num" firestore:"p_num"`
	Title         string    `json:"title" firestore:"title"`
	CodeLanguage  string    `json:"codeLanguage" firestore:"codeLanguage"`
	Solved        bool      `json:"solved" firestore:"solved"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
	Writer        string    `json:"writer" firestore:"writer"`
}

// NewQuestion carries the caller-supplied fields of a question. The solved
// flag and creation time are never accepted from the caller.
type NewQuestion struct {
	ProblemNumber int     `json:"p_num"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	CodeLanguage  string  `json:"codeLanguage"`
	Codespace     *string `json:"codespace"`
	Author        string  `json:"-"`
	Writer        string  `json:"-"`
}

// QuestionPatch is a partial update; nil fields are left untouched.
type QuestionPatch struct {
	ProblemNumber *int    `json:"p_num"`
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	CodeLanguage  *string `json:"codeLanguage"`
	Codespace     *string `json:"codespace"`
	Solved        *bool   `json:"solved"`
}

type PaginationInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	PageSize    int `json:"pageSize"`
}
