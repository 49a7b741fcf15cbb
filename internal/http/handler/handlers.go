package handler

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"intranet/internal/category"
	"intranet/internal/graph"
	"intranet/internal/model"
	"intranet/internal/service"
)

// loginRequest is the POST /api/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Root is the plain-text liveness endpoint.
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Intranet backend is live.")
	}
}

// Health checks identity-store connectivity.
func Health(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// Login verifies credentials against the identity store. Unknown email and
// wrong password produce the same 401 body.
func Login(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "email and password are required")
		}
		if req.Email == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "email and password are required")
		}

		user, err := auth.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredential) {
				return writeError(c, fiber.StatusUnauthorized, "invalid email or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}
		return c.JSON(user)
	}
}

// ListDocuments enumerates the folder mapped to the URL category.
func ListDocuments(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat := c.Params("category")

		entries, err := docs.ListByCategory(c.UserContext(), cat)
		if err != nil {
			if errors.Is(err, category.ErrUnknownCategory) {
				return writeError(c, fiber.StatusBadRequest, "unknown category")
			}
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}
		return c.JSON(entries)
	}
}

// UploadDocument stores a multipart file (field "document") in the category's
// folder. The category is validated before anything is sent upstream.
func UploadDocument(docs service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("document")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "no file was uploaded")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		file, err := docs.Upload(c.UserContext(), c.Params("category"), fh.Filename, f, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, category.ErrUnknownCategory):
				return writeError(c, fiber.StatusBadRequest, "unknown category")
			case errors.Is(err, graph.ErrConflict):
				return writeError(c, fiber.StatusConflict, "a file with that name already exists")
			default:
				return writeError(c, fiber.StatusInternalServerError, "internal server error")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "file uploaded successfully",
			"file":    file,
		})
	}
}

// Search answers free-text queries over the document index.
func Search(search service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return writeError(c, fiber.StatusBadRequest, "query parameter q is required")
		}

		results, err := search.Search(c.UserContext(), query)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}
		if results == nil {
			results = []model.SearchResult{}
		}
		return c.JSON(results)
	}
}

// News proxies the intranet news list.
func News(content service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := content.News(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}
		return c.JSON(items)
	}
}

// CalendarEvents proxies the shared calendar list.
func CalendarEvents(content service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := content.CalendarEvents(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}
		return c.JSON(events)
	}
}

// Partners proxies the partner directory filtered by category.
func Partners(content service.ContentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		partners, err := content.Partners(c.UserContext(), c.Params("category"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "internal server error")
		}
		return c.JSON(partners)
	}
}
