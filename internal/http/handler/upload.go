package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"recipeapi/internal/service"
)

const uploadFailedMessage = "Failed to process CSV and generate recommendation."

// UploadCSV accepts a multipart CSV upload in field "file" and answers with the parsed rows and a
// recipe recommendation. Every failure is a 500 with the same message; code tells them apart.
//
// @Summary Upload dietary CSV and get a recipe recommendation
// @Tags recommendations
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file with a header row"
// @Success 200 {object} model.UploadResult
// @Failure 413 {object} errorPayload
// @Failure 429 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/upload-csv [post]
func UploadCSV(svc service.UploadService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			log.WarnContext(c.UserContext(), "upload_failed", "code", "FILE_REQUIRED", "error", err.Error())
			return writeError(c, fiber.StatusInternalServerError, "FILE_REQUIRED", uploadFailedMessage)
		}

		f, err := fh.Open()
		if err != nil {
			log.ErrorContext(c.UserContext(), "upload_failed", "code", "FILE_OPEN_ERROR", "filename", fh.Filename, "error", err.Error())
			return writeError(c, fiber.StatusInternalServerError, "FILE_OPEN_ERROR", uploadFailedMessage)
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		res, err := svc.Process(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			code := uploadErrorCode(err)
			attrs := []any{"code", code, "filename", fh.Filename, "size", fh.Size, "error", err.Error()}
			var rerr *service.RecommendationError
			if errors.As(err, &rerr) && rerr.StatusCode != 0 {
				attrs = append(attrs, "upstream_status", rerr.StatusCode)
			}
			log.ErrorContext(c.UserContext(), "upload_failed", attrs...)
			return writeError(c, fiber.StatusInternalServerError, code, uploadFailedMessage)
		}
		return c.JSON(res)
	}
}

func uploadErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrCSVDecode):
		return "CSV_DECODE_ERROR"
	case errors.Is(err, service.ErrStorage):
		return "STORAGE_ERROR"
	case errors.Is(err, service.ErrRecommendation):
		return "RECOMMENDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
