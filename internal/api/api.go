// Package api exposes the registry service over HTTP with gin.
package api

import (
	"net/http"
	"strings"

	"github.com/celerix-dev/celerix-registry/internal/engine"
	"github.com/celerix-dev/celerix-registry/internal/service"
	"github.com/celerix-dev/celerix-registry/pkg/model"
	"github.com/gin-gonic/gin"
)

// RoutePrefix is prepended to the entity type to form the endpoint path,
// e.g. /api/employee.
const RoutePrefix = "/api/"

type Handler struct {
	Service *service.Service
}

// Register mounts the entity endpoints and the health check on r.
func (h *Handler) Register(r gin.IRouter) {
	path := RoutePrefix + h.Service.Entity()
	r.GET(path, h.List)
	r.POST(path, h.Create)
	r.PUT(path, h.Update)
	r.DELETE(path, h.Delete)
	r.GET("/healthz", h.Healthz)
}

func (h *Handler) List(c *gin.Context) {
	recs, err := h.Service.List(c.Query(engine.IDAttr))
	if err != nil {
		msg, status := h.Service.Translate(err)
		c.JSON(status, model.ListResponse{
			Response:  model.Response{Message: msg},
			Employees: []map[string]any{},
		})
		return
	}

	employees := make([]map[string]any, 0, len(recs))
	for _, rec := range recs {
		employees = append(employees, rec)
	}
	c.JSON(http.StatusOK, model.ListResponse{
		Response:  h.ok("details found"),
		Employees: employees,
	})
}

func (h *Handler) Create(c *gin.Context) {
	rec, ok := h.bind(c)
	if !ok {
		return
	}

	id, err := h.Service.Create(rec)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.CreateResponse{
		Response: h.ok("created successfully"),
		RegID:    id,
	})
}

func (h *Handler) Update(c *gin.Context) {
	rec, ok := h.bind(c)
	if !ok {
		return
	}

	if err := h.Service.Update(rec); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ok("Updated successfully"))
}

func (h *Handler) Delete(c *gin.Context) {
	rec, ok := h.bind(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(rec); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ok("Deleted successfully"))
}

func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    "ok",
		Employees: h.Service.Count(),
		LastRegID: h.Service.LastID(),
	})
}

// bind decodes the request body into a record, answering 400 itself when the
// body is not a JSON object.
func (h *Handler) bind(c *gin.Context) (engine.Record, bool) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	rec, err := engine.DecodeRecord(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.Response{Message: "Invalid reqbody: " + err.Error()})
		return nil, false
	}
	return rec, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	msg, status := h.Service.Translate(err)
	c.JSON(status, model.Response{Message: msg})
}

func (h *Handler) ok(what string) model.Response {
	entity := h.Service.Entity()
	if entity != "" {
		entity = strings.ToUpper(entity[:1]) + entity[1:]
	}
	return model.Response{Message: entity + " " + what, Success: true}
}
