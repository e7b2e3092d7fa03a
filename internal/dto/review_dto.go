package dto

// ReviewForm carries the review fields for both response and standalone mode.
// Rating is a pointer so an omitted field is a validation error rather than a
// silent zero-star review.
type ReviewForm struct {
	Rating   *int   `form:"rating" json:"rating" validate:"required,min=0,max=5"`
	Headline string `form:"headline" json:"headline" validate:"required,max=128"`
	Body     string `form:"body" json:"body" validate:"max=8192"`
}

// StandaloneReviewForm validates a brand-new ticket and its review in one
// submission. Either both records are created or neither is.
type StandaloneReviewForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=128"`
	Author      string `form:"author" json:"author" validate:"max=128"`
	Description string `form:"description" json:"description" validate:"max=2048"`
	Rating      *int   `form:"rating" json:"rating" validate:"required,min=0,max=5"`
	Headline    string `form:"headline" json:"headline" validate:"required,max=128"`
	Body        string `form:"body" json:"body" validate:"max=8192"`
}

func (f *StandaloneReviewForm) TicketForm() *TicketForm {
	return &TicketForm{Title: f.Title, Author: f.Author, Description: f.Description}
}

func (f *StandaloneReviewForm) ReviewForm() *ReviewForm {
	return &ReviewForm{Rating: f.Rating, Headline: f.Headline, Body: f.Body}
}
