package api

import (
	"bytes"
	"fmt"
	"net/http"

	"smartsheetsvc/adapters/excel"
	"smartsheetsvc/internal"
	"smartsheetsvc/internal/errors"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "OK",
		"service_version": internal.Version,
	})
}

func (s *Server) handleFunding(c *gin.Context) {
	recs, err := s.service.Funding(c.Request.Context(), queryParam(c, "project_name"), queryParam(c, "subproject"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	respondRecords(s, c, "funding", recs)
}

func (s *Server) handleProjectNames(c *gin.Context) {
	names, err := s.service.ProjectNames(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (s *Server) handleProtocols(c *gin.Context) {
	recs, err := s.service.Protocols(c.Request.Context(), queryParam(c, "protocol_name"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	respondRecords(s, c, "protocols", recs)
}

func (s *Server) handlePerfusions(c *gin.Context) {
	recs, err := s.service.Perfusions(c.Request.Context(), queryParam(c, "subject_id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	respondRecords(s, c, "perfusions", recs)
}

func (s *Server) handlePerfusionSummary(c *gin.Context) {
	summary, err := s.service.PerfusionSummary(c.Request.Context(), queryParam(c, "subject_id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// queryParam returns nil when the parameter is absent. A present but empty
// parameter is an empty filter value.
func queryParam(c *gin.Context, name string) *string {
	if v, ok := c.GetQuery(name); ok {
		return &v
	}
	return nil
}

// respondRecords writes JSON, or an XLSX download when format=xlsx.
func respondRecords[T any](s *Server, c *gin.Context, name string, recs []T) {
	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		c.JSON(http.StatusOK, recs)
	case "xlsx":
		var buf bytes.Buffer
		if err := excel.WriteRecords(&buf, name, recs); err != nil {
			s.writeError(c, errors.Wrap(err, "failed to render workbook"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
		c.Data(http.StatusOK, excel.ContentType, buf.Bytes())
	default:
		s.writeError(c, errors.InvalidInput(fmt.Sprintf("unsupported format %q, use json or xlsx", format)))
	}
}
