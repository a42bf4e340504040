package book

// ToEntity builds a new entity from a request. The id stays unset; the
// repository assigns it on insert.
func ToEntity(r BookRequest) Book {
	return Book{
		Title:           r.Title,
		Author:          r.Author,
		ISBN:            r.ISBN,
		PublicationDate: r.PublicationDate,
	}
}

func ToResponse(b Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationDate: b.PublicationDate,
	}
}

// ApplyUpdate replaces every mutable field of b with the values from r.
// PUT is a full replace; there are no partial updates.
func ApplyUpdate(b *Book, r BookRequest) {
	b.Title = r.Title
	b.Author = r.Author
	b.ISBN = r.ISBN
	b.PublicationDate = r.PublicationDate
}
