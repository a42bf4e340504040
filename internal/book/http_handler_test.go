package book_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookservice/internal/book"
	"bookservice/internal/book/mocks"
	"bookservice/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHandlerMux wires mock repo -> service -> handler -> mux so that
// PathValue is populated exactly as in production.
func newHandlerMux(t *testing.T) (*http.ServeMux, *mocks.MockRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	repo := mocks.NewMockRepository(ctrl)
	handler := book.NewHTTPHandler(book.NewService(repo))

	mux := http.NewServeMux()
	handler.Register(mux)
	return mux, repo
}

func TestHTTPHandler_Create(t *testing.T) {
	assignedID := uuid.New()
	pub, err := book.ParseDate("2015-10-26")
	require.NoError(t, err)

	t.Run("created with location header", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		expectTx(repo)
		repo.EXPECT().ExistsByISBN(gomock.Any(), "978-0134190440").Return(false, nil)
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *book.Book) error {
				assert.Equal(t, "The Go Programming Language", b.Title)
				require.NotNil(t, b.PublicationDate)
				assert.True(t, b.PublicationDate.Equal(pub))
				b.ID = assignedID
				return nil
			})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/books", map[string]any{
			"title":           "The Go Programming Language",
			"author":          "Alan A. A. Donovan",
			"isbn":            "978-0134190440",
			"publicationDate": "2015-10-26",
		}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.Equal(t, "/books/"+assignedID.String(), resp.Header.Get("Location"))
		assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Equal(t, assignedID.String(), resp.Body["id"])
		assert.Equal(t, "978-0134190440", resp.Body["isbn"])
		assert.Equal(t, "2015-10-26", resp.Body["publicationDate"])
	})

	t.Run("omitted publication date is accepted", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		expectTx(repo)
		repo.EXPECT().ExistsByISBN(gomock.Any(), "I1").Return(false, nil)
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *book.Book) error {
				assert.Nil(t, b.PublicationDate)
				b.ID = assignedID
				return nil
			})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/books", map[string]any{
			"title": "A", "author": "B", "isbn": "I1",
		}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusCreated, resp.Code)
		_, present := resp.Body["publicationDate"]
		assert.False(t, present)
	})

	t.Run("duplicate isbn conflicts", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		expectTx(repo)
		repo.EXPECT().ExistsByISBN(gomock.Any(), "I1").Return(true, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/books", map[string]any{
			"title": "X", "author": "Y", "isbn": "I1",
		}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Equal(t, float64(409), resp.Body["status"])
		assert.Equal(t, "Conflict", resp.Body["error"])
		assert.Equal(t, "ISBN already exists: I1", resp.Body["message"])
		assert.NotEmpty(t, resp.Body["timestamp"])
	})

	t.Run("blank fields are enumerated", func(t *testing.T) {
		mux, _ := newHandlerMux(t)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/books", map[string]any{
			"title": "  ", "author": "", "isbn": "I1",
		}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "Validation failed", resp.Body["message"])
		fields, ok := resp.Body["fields"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "must not be blank", fields["title"])
		assert.Equal(t, "must not be blank", fields["author"])
		_, isbnFlagged := fields["isbn"]
		assert.False(t, isbnFlagged)
	})

	t.Run("length boundaries", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		expectTx(repo)
		repo.EXPECT().ExistsByISBN(gomock.Any(), "I1").Return(false, nil)
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *book.Book) error {
				b.ID = assignedID
				return nil
			})

		atMax := strings.Repeat("a", 255)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/books", map[string]any{
			"title": atMax, "author": "B", "isbn": "I1",
		}))
		assert.Equal(t, http.StatusCreated, w.Code)

		overMax := strings.Repeat("a", 256)
		w = httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/books", map[string]any{
			"title": overMax, "author": "B", "isbn": "I1",
		}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		fields, ok := resp.Body["fields"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "must be at most 255 characters", fields["title"])
	})

	t.Run("malformed body", func(t *testing.T) {
		mux, _ := newHandlerMux(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(w, req)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "Malformed request body", resp.Body["message"])
	})

	t.Run("malformed publication date", func(t *testing.T) {
		mux, _ := newHandlerMux(t)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPost, "/books", map[string]any{
			"title": "A", "author": "B", "isbn": "I1", "publicationDate": "26-10-2015",
		}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestHTTPHandler_FindAll(t *testing.T) {
	mux, repo := newHandlerMux(t)
	id1, id2 := uuid.New(), uuid.New()
	repo.EXPECT().FindAll(gomock.Any()).Return([]book.Book{
		{ID: id1, Title: "A", Author: "B", ISBN: "I1"},
		{ID: id2, Title: "C", Author: "D", ISBN: "I2"},
	}, nil)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var out []book.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, id1, out[0].ID)
	assert.Equal(t, id2, out[1].ID)
}

func TestHTTPHandler_FindByID(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(book.Book{ID: id, Title: "A", Author: "B", ISBN: "I1"}, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/"+id.String(), nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, id.String(), resp.Body["id"])
	})

	t.Run("unknown id", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(book.Book{}, book.ErrNotFound)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/"+id.String(), nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "Not Found", resp.Body["error"])
		assert.Equal(t, "Book not found: "+id.String(), resp.Body["message"])
	})

	t.Run("malformed uuid includes the offending value", func(t *testing.T) {
		mux, _ := newHandlerMux(t)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/not-a-uuid", nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "Invalid parameter: id", resp.Body["message"])
		assert.Equal(t, "not-a-uuid", resp.Body["value"])
	})

	t.Run("repository failure yields opaque 500", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(book.Book{}, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/"+id.String(), nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, "Unexpected error", resp.Body["message"])
		assert.NotEmpty(t, resp.Body["detail"])
		assert.NotContains(t, resp.Body, "stack")
	})
}

func TestHTTPHandler_Update(t *testing.T) {
	id := uuid.New()
	stored := book.Book{ID: id, Title: "A", Author: "B", ISBN: "I1"}

	t.Run("keeping own isbn succeeds", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		expectTx(repo)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(stored, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPut, "/books/"+id.String(), map[string]any{
			"title": "A2", "author": "B", "isbn": "I1",
		}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "A2", resp.Body["title"])
	})

	t.Run("isbn owned by another book conflicts", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		expectTx(repo)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(stored, nil)
		repo.EXPECT().ExistsByISBN(gomock.Any(), "I2").Return(true, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPut, "/books/"+id.String(), map[string]any{
			"title": "A", "author": "B", "isbn": "I2",
		}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusConflict, resp.Code)
		assert.Equal(t, "ISBN already exists: I2", resp.Body["message"])
	})

	t.Run("unknown id", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		expectTx(repo)
		repo.EXPECT().FindByID(gomock.Any(), id).Return(book.Book{}, book.ErrNotFound)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPut, "/books/"+id.String(), map[string]any{
			"title": "A", "author": "B", "isbn": "I1",
		}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty title is rejected before the service runs", func(t *testing.T) {
		mux, _ := newHandlerMux(t)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodPut, "/books/"+id.String(), map[string]any{
			"title": "", "author": "B", "isbn": "I1",
		}))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		fields, ok := resp.Body["fields"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, fields, "title")
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		expectTx(repo)
		repo.EXPECT().ExistsByID(gomock.Any(), id).Return(true, nil)
		repo.EXPECT().DeleteByID(gomock.Any(), id).Return(true, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodDelete, "/books/"+id.String(), nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Zero(t, w.Body.Len())
	})

	t.Run("unknown id", func(t *testing.T) {
		mux, repo := newHandlerMux(t)
		expectTx(repo)
		repo.EXPECT().ExistsByID(gomock.Any(), id).Return(false, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.NewRequest(http.MethodDelete, "/books/"+id.String(), nil))

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "Book not found: "+id.String(), resp.Body["message"])
	})
}
