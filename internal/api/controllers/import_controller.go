package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"schoolpay/internal/config"
	"schoolpay/internal/models/response_models"
	"schoolpay/internal/services"
	"schoolpay/pkg/utils"
)

type ImportController struct {
	importService services.ImportServiceInterface
	paths         config.ImportConfig
}

func NewImportController(importService services.ImportServiceInterface, cfg config.Config) *ImportController {
	return &ImportController{
		importService: importService,
		paths:         cfg.Import,
	}
}

// ImportStudents godoc
// @Summary Import students from CSV
// @Description Uses the uploaded file, or the configured default path when no file is sent.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Students CSV"
// @Success 200 {object} utils.APIResponse{data=response_models.ImportResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /import/students [post]
func (ic *ImportController) ImportStudents(c *gin.Context) {
	ic.handle(c, ic.paths.StudentsPath, ic.importService.ImportStudents, "Students imported successfully.")
}

// ImportTransactions godoc
// @Summary Import transactions from CSV
// @Description Uses the uploaded file, or the configured default path when no file is sent.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Transactions CSV"
// @Success 200 {object} utils.APIResponse{data=response_models.ImportResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /import/transactions [post]
func (ic *ImportController) ImportTransactions(c *gin.Context) {
	ic.handle(c, ic.paths.TransactionsPath, ic.importService.ImportTransactions, "Transactions imported successfully.")
}

type importFunc func(ctx context.Context, r io.Reader) (int, error)

func (ic *ImportController) handle(c *gin.Context, defaultPath string, run importFunc, msg string) {
	src, err := ic.source(c, defaultPath)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	defer src.Close()

	n, err := run(c.Request.Context(), src)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, response_models.ImportResponse{Imported: n}, msg)
}

// source prefers the multipart "file" field and falls back to defaultPath.
func (ic *ImportController) source(c *gin.Context, defaultPath string) (io.ReadCloser, error) {
	fh, err := c.FormFile("file")
	if err == nil {
		return fh.Open()
	}
	if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		return nil, utils.NewValidationError("Invalid file upload.")
	}

	if defaultPath == "" {
		return nil, utils.NewValidationError("CSV file is required.")
	}
	f, err := os.Open(defaultPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, utils.NewValidationError(fmt.Sprintf("Default import file %s does not exist.", defaultPath))
		}
		return nil, fmt.Errorf("open import file: %w", err)
	}
	return f, nil
}
