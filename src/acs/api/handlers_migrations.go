package api

import (
	"net/http"
	"time"

	"github.com/bitswalk/acs/src/acs/db/migrations"
	"github.com/gin-gonic/gin"
)

// handleMigrate applies pending migrations
//
// @Summary      Apply migrations
// @Description  Applies every pending migration in order and stops at the first failure
// @Tags         migrations
// @Produce      json
// @Success      200  {object}  MigrateResponse
// @Failure      500  {object}  errors.Response
// @Router       /v1/migrations [post]
func (a *API) handleMigrate(c *gin.Context) {
	report, err := a.migrations.Migrate(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MigrateResponse{
		Applied: report.Applied,
		Skipped: report.Skipped,
		Failed:  report.Failed,
	})
}

// handleMigrationStatus reports which expected tables and migrations exist
//
// @Summary      Schema status
// @Tags         migrations
// @Produce      json
// @Success      200  {object}  MigrationStatusResponse
// @Failure      500  {object}  errors.Response
// @Router       /v1/migrations/status [get]
func (a *API) handleMigrationStatus(c *gin.Context) {
	status, err := a.migrations.CheckStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStatusResponse(status))
}

func toStatusResponse(s *migrations.Status) MigrationStatusResponse {
	resp := MigrationStatusResponse{
		Ready:   s.Ready(),
		Tables:  make([]TableStatusResponse, 0, len(s.Tables)),
		Applied: make([]AppliedMigration, 0, len(s.Applied)),
		Pending: s.Pending,
	}
	if resp.Pending == nil {
		resp.Pending = []string{}
	}
	for _, t := range s.Tables {
		resp.Tables = append(resp.Tables, TableStatusResponse{Name: t.Name, Exists: t.Exists})
	}
	for _, r := range s.Applied {
		resp.Applied = append(resp.Applied, AppliedMigration{
			MigrationID: r.MigrationID,
			AppliedAt:   r.AppliedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp
}
