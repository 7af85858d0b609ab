package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jacksmith/shelf/internal/cli"
	"github.com/jacksmith/shelf/internal/model"
	"github.com/jacksmith/shelf/internal/ops"
)

// BookRequest is the body of POST /api/books and PUT /api/books/:id.
// Year accepts a JSON number or a numeric string, as form inputs send it.
type BookRequest struct {
	Title      string      `json:"title"`
	Author     string      `json:"author"`
	Year       json.Number `json:"year"`
	IsComplete bool        `json:"isComplete"`
}

// validate checks every field before anything is changed and returns the parsed year.
func (r *BookRequest) validate() (int, error) {
	if err := ops.ValidateBook(r.Title, r.Author); err != nil {
		return 0, err
	}
	return ops.ParseYear(string(r.Year))
}

type BooksController struct {
	shelf  *Shelf
	logger *slog.Logger
}

func NewBooksController(shelf *Shelf, logger *slog.Logger) *BooksController {
	return &BooksController{shelf: shelf, logger: logger}
}

// List returns the books whose title contains ?q=, split by read-status.
func (bc *BooksController) List(c *gin.Context) {
	var result ops.QueryResult
	_ = bc.shelf.Do(func(bs *ops.BookStore) error {
		result = bs.Query(c.Query("q"))
		return nil
	})
	c.JSON(http.StatusOK, result)
}

func (bc *BooksController) Get(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}

	var book model.Book
	err = bc.shelf.Do(func(bs *ops.BookStore) error {
		b, ok := bs.Get(id)
		if !ok {
			return ops.LookupError(id)
		}
		book = b
		return nil
	})
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BooksController) Create(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bc.logger, &cli.ValidationError{Message: "invalid request body: " + err.Error()})
		return
	}
	year, err := req.validate()
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}

	var book model.Book
	err = bc.shelf.Do(func(bs *ops.BookStore) error {
		book, err = bs.Add(req.Title, req.Author, year, req.IsComplete)
		return err
	})
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// Update replaces title, author and year together; isComplete is ignored.
func (bc *BooksController) Update(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bc.logger, &cli.ValidationError{Message: "invalid request body: " + err.Error()})
		return
	}
	year, err := req.validate()
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}

	var book model.Book
	err = bc.shelf.Do(func(bs *ops.BookStore) error {
		ok, err := bs.Edit(id, req.Title, req.Author, year)
		if err != nil {
			return err
		}
		if !ok {
			return ops.LookupError(id)
		}
		book, _ = bs.Get(id)
		return nil
	})
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BooksController) Toggle(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}

	var book model.Book
	err = bc.shelf.Do(func(bs *ops.BookStore) error {
		ok, err := bs.ToggleComplete(id)
		if err != nil {
			return err
		}
		if !ok {
			return ops.LookupError(id)
		}
		book, _ = bs.Get(id)
		return nil
	})
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BooksController) Delete(c *gin.Context) {
	id, err := bookID(c)
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}

	err = bc.shelf.Do(func(bs *ops.BookStore) error {
		ok, err := bs.Delete(id)
		if err != nil {
			return err
		}
		if !ok {
			return ops.LookupError(id)
		}
		return nil
	})
	if err != nil {
		respondError(c, bc.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
