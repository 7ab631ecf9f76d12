package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"farmhub/pkg/record"
)

// RecordCtrl serves the CRUD endpoints of one entity. Errors are returned to
// echo's error handler, which maps them to status codes.
type RecordCtrl struct{ svc *record.Service }

func New(svc *record.Service) *RecordCtrl { return &RecordCtrl{svc} }

// Register mounts /<path> and /<path>/:id on g, plus /<path>/search when the
// schema declares searchable fields.
func (h *RecordCtrl) Register(g *echo.Group) {
	p := "/" + h.svc.Schema().Path
	g.GET(p, h.List)
	g.POST(p, h.Create)
	if len(h.svc.Schema().SearchFields()) > 0 {
		g.GET(p+"/search", h.Search)
	}
	g.GET(p+"/:id", h.Get)
	g.PUT(p+"/:id", h.Update)
	g.DELETE(p+"/:id", h.Delete)
}

func (h *RecordCtrl) List(c echo.Context) error {
	out, err := h.svc.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordCtrl) Get(c echo.Context) error {
	out, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordCtrl) Create(c echo.Context) error {
	in, err := bindRecord(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *RecordCtrl) Update(c echo.Context) error {
	in, err := bindRecord(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecordCtrl) Delete(c echo.Context) error {
	ok, err := h.svc.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": ok})
}

func (h *RecordCtrl) Search(c echo.Context) error {
	out, err := h.svc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ChildrenOf serves GET /<parent>/:id/<child>: the child records whose ref
// field points at the parent id.
func ChildrenOf(child *record.Service, field string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := record.ParseID(c.Param("id"))
		if err != nil {
			return err
		}
		out, err := child.Where(c.Request().Context(), field, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, out)
	}
}

// bindRecord reads only the JSON body; path params never leak into the record.
func bindRecord(c echo.Context) (record.Record, error) {
	var in map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &in); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if in == nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
	}
	return record.Record(in), nil
}
