package book

import "github.com/google/uuid"

// BookRequest is the body of POST /books and PUT /books/{id}.
type BookRequest struct {
	Title           string `json:"title" validate:"notblank,max=255"`
	Author          string `json:"author" validate:"notblank,max=255"`
	ISBN            string `json:"isbn" validate:"notblank,max=32"`
	PublicationDate *Date  `json:"publicationDate,omitempty"`
}

// BookResponse is the wire shape of a stored book.
type BookResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	PublicationDate *Date     `json:"publicationDate,omitempty"`
}
