package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/coffee-sales/internal/display"
	"github.com/example/coffee-sales/pkg/query"
	"github.com/example/coffee-sales/pkg/sale"
)

// reserved query parameters that are not field filters
const (
	paramSort    = "sort"
	paramLimit   = "limit"
	paramBy      = "by"
	paramMeasure = "measure"
)

// Handler serves dashboard queries over one loaded dataset
type Handler struct {
	dataset *sale.Dataset
	catalog *query.Catalog
}

// NewHandler creates a handler; the dataset must not be modified afterwards
func NewHandler(dataset *sale.Dataset, catalog *query.Catalog) *Handler {
	return &Handler{dataset: dataset, catalog: catalog}
}

type fieldResponse struct {
	Field  sale.Field `json:"field"`
	Values []string   `json:"values"`
}

// --------------------------------------------------
// Filter options
// --------------------------------------------------
func (h *Handler) Fields(c *gin.Context) {
	fields := make([]fieldResponse, 0, len(sale.Fields))
	for _, f := range sale.Fields {
		fields = append(fields, fieldResponse{Field: f, Values: h.dataset.Values(f)})
	}
	c.JSON(http.StatusOK, gin.H{"fields": fields})
}

// --------------------------------------------------
// Filtered records
// --------------------------------------------------
func (h *Handler) Records(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query(paramLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fail(c, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	records := view.Records()
	total := len(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   total,
		"records": records,
	})
}

// --------------------------------------------------
// Quick overview metrics
// --------------------------------------------------
func (h *Handler) Metrics(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	m := query.Summarize(h.dataset, view)
	resp := gin.H{"metrics": m}
	if w := m.Warning(); w != nil {
		resp["warning"] = w.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// --------------------------------------------------
// Report catalog
// --------------------------------------------------
func (h *Handler) Reports(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reports": h.catalog.Reports()})
}

// --------------------------------------------------
// Single report
// --------------------------------------------------
func (h *Handler) Report(c *gin.Context) {
	report, err := h.catalog.Get(c.Param("name"))
	if err != nil {
		fail(c, http.StatusNotFound, err)
		return
	}

	if raw := c.Query(paramSort); raw != "" {
		dir, err := query.ParseSortDirection(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		report.Sort = dir
	}

	view, ok := h.view(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, withWarning(gin.H{
		"report": report,
	}, report.Run(h.dataset, view)))
}

// --------------------------------------------------
// Ad hoc grouping of the filtered view
// --------------------------------------------------
func (h *Handler) Group(c *gin.Context) {
	field, err := sale.ParseField(c.Query(paramBy))
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	measure := query.Count
	if raw := c.Query(paramMeasure); raw != "" {
		if measure, err = query.ParseMeasure(raw); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
	}

	dir := query.Descending
	if raw := c.Query(paramSort); raw != "" {
		if dir, err = query.ParseSortDirection(raw); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
	}

	view, ok := h.view(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, withWarning(gin.H{}, query.GroupAggregate(view.Records(), field, measure, dir)))
}

// withWarning adds the aggregate to resp, flagging an empty result
func withWarning(resp gin.H, res query.AggregateResult) gin.H {
	resp["result"] = res
	if len(res.Groups) == 0 {
		resp["warning"] = query.ErrEmptyResult.Error()
	}
	return resp
}

func (h *Handler) view(c *gin.Context) (*query.View, bool) {
	spec, err := query.FilterSpecFromValues(c.Request.URL.Query(), paramSort, paramLimit, paramBy, paramMeasure)
	if err != nil {
		fail(c, http.StatusBadRequest, err)
		return nil, false
	}
	return query.ApplyFilters(h.dataset, spec), true
}

// fail answers with the error notice. Client mistakes are logged as warnings.
func fail(c *gin.Context, status int, err error) {
	n := display.NewNotice(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("[%s] %s %s: %s", n.Ref, c.Request.Method, c.Request.URL.Path, n.Details)
	} else {
		log.Warningf("[%s] %s %s: %s", n.Ref, c.Request.Method, c.Request.URL.Path, n.Details)
	}
	c.JSON(status, n)
}
