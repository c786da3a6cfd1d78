// Package books is the in-memory book catalog. The list stands in for a
// database and is guarded by a mutex since handlers run concurrently.
package books

import (
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-errors"
)

// Book is a catalog entry.
type Book struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// BookPayload is the create/update request body. ID is not needed on create.
type BookPayload struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// Validate enforces the catalog contract. Failures surface as 422.
func (p BookPayload) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(3, 0)),
		validation.Field(&p.Author, validation.Required, validation.Length(1, 0)),
		validation.Field(&p.Description, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Rating, validation.Min(0), validation.Max(5)),
	)
	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid book payload")
	}
	return nil
}

// ErrBookNotFound is returned for lookups and updates that miss.
var ErrBookNotFound = errors.New("book not found", errors.CategoryNotFound).
	WithCode(errors.CodeNotFound)

// Catalog is the mutable in-memory book list.
type Catalog struct {
	mu    sync.RWMutex
	books []Book
}

// NewCatalog returns a catalog seeded with the starter titles.
func NewCatalog() *Catalog {
	return &Catalog{
		books: []Book{
			{ID: 1, Title: "Computer Science Pro", Author: "Muhsin", Description: "Best book", Rating: 5},
			{ID: 2, Title: "Be Fast with FastAPI", Author: "Muhsin", Description: "Great book", Rating: 5},
			{ID: 3, Title: "Master Endpoints", Author: "Muhsin", Description: "Awesome book", Rating: 5},
			{ID: 4, Title: "HP1", Author: "Author 1", Description: "Nice", Rating: 2},
			{ID: 5, Title: "HP2", Author: "Author 2", Description: "Nice", Rating: 3},
			{ID: 6, Title: "HP3", Author: "Author 3", Description: "Nice", Rating: 1},
		},
	}
}

// All returns a copy of the catalog.
func (c *Catalog) All() []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Book, len(c.books))
	copy(out, c.books)
	return out
}

// ByID returns the book with the given id.
func (c *Catalog) ByID(id int) (Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, book := range c.books {
		if book.ID == id {
			return book, nil
		}
	}
	return Book{}, ErrBookNotFound
}

// ByRating returns every book with the given rating.
func (c *Catalog) ByRating(rating int) []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []Book{}
	for _, book := range c.books {
		if book.Rating == rating {
			out = append(out, book)
		}
	}
	return out
}

// Create appends a book, assigning the next id after the current tail.
func (c *Catalog) Create(payload BookPayload) Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := 1
	if len(c.books) > 0 {
		id = c.books[len(c.books)-1].ID + 1
	}

	book := Book{
		ID:          id,
		Title:       payload.Title,
		Author:      payload.Author,
		Description: payload.Description,
		Rating:      payload.Rating,
	}
	c.books = append(c.books, book)
	return book
}

// Update replaces the book with the payload's id.
func (c *Catalog) Update(payload BookPayload) (Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.books {
		if c.books[i].ID == payload.ID {
			c.books[i] = Book{
				ID:          payload.ID,
				Title:       payload.Title,
				Author:      payload.Author,
				Description: payload.Description,
				Rating:      payload.Rating,
			}
			return c.books[i], nil
		}
	}
	return Book{}, ErrBookNotFound
}

// Delete removes the book with the given id.
func (c *Catalog) Delete(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.books {
		if c.books[i].ID == id {
			c.books = append(c.books[:i], c.books[i+1:]...)
			return nil
		}
	}
	return ErrBookNotFound
}
