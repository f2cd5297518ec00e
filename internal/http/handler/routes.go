package handler

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"okrhub/internal/http/middleware"
	"okrhub/internal/repository"
	"okrhub/internal/service"
	"okrhub/internal/storage"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic: they parse the request,
// call the document service and map its errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService) {
	// Health endpoint: checks DB connectivity only
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	docs := app.Group("/documents", middleware.RequestUser())

	// List documents visible to the requester, with filters & pagination
	docs.Get("/", func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		f := repository.DocumentFilter{
			Priorities: splitParam(c.Query("priority")),
			Statuses:   splitParam(c.Query("status")),
			Owners:     splitParam(c.Query("responsible_person")),
			SortBy:     c.Query("sort_by"),
		}

		res, err := docSvc.ListAll(c.UserContext(), requestUser(c), c.Query("company_id"), f, repository.PageQuery{Limit: limit, Offset: offset})
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(res)
	})

	// Create document (multipart/form-data; file field is optional when a link is given)
	docs.Post("/", func(c *fiber.Ctx) error {
		in := service.CreateDocumentInput{
			Title:     c.FormValue("title"),
			Priority:  c.FormValue("priority"),
			Status:    c.FormValue("status"),
			Link:      c.FormValue("link"),
			Owner:     c.FormValue("owner"),
			CompanyID: c.Query("company_id"),
		}

		up, closeFn, err := formUpload(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		if closeFn != nil {
			defer closeFn()
		}
		in.File = up

		doc, err := docSvc.Create(c.UserContext(), requestUser(c), in)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	})

	// Update document by ID
	docs.Put("/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		in := service.UpdateDocumentInput{
			Title:     c.FormValue("title"),
			Priority:  c.FormValue("priority"),
			Status:    c.FormValue("status"),
			Link:      c.FormValue("link"),
			Owner:     c.FormValue("owner"),
			CompanyID: c.Query("company_id"),
		}

		up, closeFn, err := formUpload(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		if closeFn != nil {
			defer closeFn()
		}
		in.File = up

		doc, err := docSvc.Update(c.UserContext(), requestUser(c), id, in)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(doc)
	})

	// Delete document by ID
	docs.Delete("/:id", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := docSvc.Delete(c.UserContext(), requestUser(c), id, c.Query("company_id")); err != nil {
			return writeDomainError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	// Documents tracked by one direct-report record, annotated with permissions
	reports := app.Group("/direct-reports", middleware.RequestUser())
	reports.Get("/:id/documents", func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		items, err := docSvc.ListForDirectReport(c.UserContext(), requestUser(c), id)
		if err != nil {
			return writeDomainError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	})
}

// requestUser reads the authenticated user ID stored by middleware.RequestUser.
func requestUser(c *fiber.Ctx) string {
	uid, _ := c.Locals(middleware.RequestUserLocalKey).(string)
	return uid
}

// formUpload extracts the optional "file" field from a multipart request.
// Returns a nil Upload when the field is absent.
func formUpload(c *fiber.Ctx) (*storage.Upload, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	up := &storage.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: ct,
	}
	return up, func() { _ = f.Close() }, nil
}

// splitParam turns a comma separated query value into a slice, empty when unset.
func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
